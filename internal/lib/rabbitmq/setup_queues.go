package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации, которым она
// привязана к обменнику уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключ маршрутизации и очередь уведомлений о публикации событий.
const (
	EventPublishedRoutingKey = "event.published"
	EventPublishedQueue      = "notifications.event_published"
)

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: EventPublishedQueue, RoutingKey: EventPublishedRoutingKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
