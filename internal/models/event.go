// Package models содержит доменные структуры, описывающие событие,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// Статусы жизненного цикла события. В публичной выдаче участвуют
// только события со статусом PUBLISHED.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Event представляет собой основную модель события,
// используемую в бизнес-логике и хранилище.
// Временные метки CreatedAt и UpdatedAt проставляются хранилищем при записи.
type Event struct {
	ID          int       `json:"id"`          // Идентификатор события
	Title       string    `json:"title"`       // Название события
	Description string    `json:"description"` // Описание
	StartDate   time.Time `json:"start_date"`  // Дата и время начала
	EndDate     time.Time `json:"end_date"`    // Дата и время окончания
	Location    string    `json:"location"`    // Место проведения
	Capacity    int       `json:"capacity"`    // Вместимость, от 1 до 10000
	Price       float64   `json:"price"`       // Цена билета, неотрицательная
	Status      string    `json:"status"`      // Статус жизненного цикла
	OwnerUID    string    `json:"owner_uid"`   // UID пользователя-владельца
	CreatedAt   time.Time `json:"created_at"`  // Дата создания записи
	UpdatedAt   time.Time `json:"updated_at"`  // Дата последнего обновления
}

// DummyEvent используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Event.
// Даты приходят в виде строк RFC3339, чтобы их можно было валидировать и парсить вручную.
type DummyEvent struct {
	Title       string  `json:"title" validate:"required,min=3,max=100"`                            // Название, 3..100 символов
	Description string  `json:"description" validate:"max=500"`                                     // Описание, до 500 символов
	StartDate   string  `json:"start_date" validate:"required"`                                     // Начало в формате RFC3339
	EndDate     string  `json:"end_date" validate:"required"`                                       // Окончание в формате RFC3339
	Location    string  `json:"location" validate:"required"`                                       // Место проведения
	Capacity    int     `json:"capacity" validate:"required,gte=1,lte=10000"`                       // Вместимость в границах [1,10000]
	Price       float64 `json:"price" validate:"gte=0"`                                             // Цена (>= 0)
	Status      string  `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"` // Новый статус, опционально
}

// EventPublishedInfo сообщение для брокера о публикации события.
// Потребляется сервисом отправки уведомлений.
type EventPublishedInfo struct {
	EventID       int       `json:"event_id"`
	Title         string    `json:"title"`
	StartDate     time.Time `json:"start_date"`
	OwnerUsername string    `json:"owner_username"`
	OwnerEmail    string    `json:"owner_email"`
}
