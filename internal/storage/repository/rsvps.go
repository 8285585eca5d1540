package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/event-management/internal/models"
)

// UpsertRSVP создает или обновляет отклик пары (пользователь, событие)
// и возвращает идентификатор записи.
func (s *Storage) UpsertRSVP(ctx context.Context, rsvp models.RSVP) (int, error) {
	const op = "storage.UpsertRSVP"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO rsvps (user_uid, event_id, status)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid, event_id)
			  DO UPDATE SET status = EXCLUDED.status
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		rsvp.UserUID, rsvp.EventID, rsvp.Status).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CountAttendees возвращает число откликов со статусом ATTENDING для события.
func (s *Storage) CountAttendees(ctx context.Context, eventID int) (int, error) {
	const op = "storage.CountAttendees"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND status = 'ATTENDING'`
	if err := s.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
