// Package models содержит доменную модель отклика пользователя на событие.
package models

import "time"

// Статусы отклика. В подсчёте посещаемости участвуют только ATTENDING.
const (
	RSVPAttending = "ATTENDING"
	RSVPMaybe     = "MAYBE"
	RSVPDeclined  = "DECLINED"
)

// RSVP связывает пользователя и событие со статусом посещения.
// На пару (пользователь, событие) приходится одна запись.
type RSVP struct {
	ID        int       // Идентификатор записи
	UserUID   string    // UID пользователя
	EventID   int       // Идентификатор события
	Status    string    // Статус посещения
	CreatedAt time.Time // Дата создания отклика
}

// DummyRSVP используется для приёма статуса отклика из JSON-запроса.
type DummyRSVP struct {
	Status string `json:"status" validate:"required,oneof=ATTENDING MAYBE DECLINED"` // Статус посещения
}
