package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/event-management/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EventPublisher публикует уведомления о публикации событий в обменник
// уведомлений. Используется сервисом событий при переходе DRAFT -> PUBLISHED.
type EventPublisher struct {
	ch *amqp.Channel
}

func NewEventPublisher(ch *amqp.Channel) *EventPublisher {
	return &EventPublisher{ch: ch}
}

// PublishEventPublished отправляет сообщение о публикации события.
func (p *EventPublisher) PublishEventPublished(info models.EventPublishedInfo) error {
	const op = "rabbitmq.PublishEventPublished"
	if err := PublishMessage(p.ch, ExchangeName, EventPublishedRoutingKey, info); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
