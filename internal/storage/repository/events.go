package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/event-management/internal/models"
)

// ErrEventNotFound возвращается, когда событие отсутствует в базе.
var ErrEventNotFound = errors.New("event not found")

const eventColumns = `id, title, description, start_date, end_date, location,
			      capacity, price, status, owner_uid, created_at, updated_at`

func scanEvent(row interface{ Scan(dest ...any) error }) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.Location, &e.Capacity, &e.Price, &e.Status, &e.OwnerUID,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEvent добавляет новое событие и возвращает созданную запись.
// Временные метки created_at и updated_at проставляет база.
func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO events (title, description, start_date, end_date, location,
			      capacity, price, status, owner_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + eventColumns
	row := s.DB.QueryRowContext(ctx, query,
		event.Title, event.Description, event.StartDate, event.EndDate, event.Location,
		event.Capacity, event.Price, event.Status, event.OwnerUID)
	created, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateEvent перезаписывает поля события по ID и возвращает обновлённую запись.
func (s *Storage) UpdateEvent(ctx context.Context, event models.Event, id int) (*models.Event, error) {
	const op = "storage.UpdateEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE events
			  SET title = $1, description = $2, start_date = $3, end_date = $4,
			      location = $5, capacity = $6, price = $7, status = $8,
			      updated_at = now()
			  WHERE id = $9
			  RETURNING ` + eventColumns
	row := s.DB.QueryRowContext(ctx, query,
		event.Title, event.Description, event.StartDate, event.EndDate,
		event.Location, event.Capacity, event.Price, event.Status, id)
	updated, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// GetEvent возвращает событие по его ID.
func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.GetEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return event, nil
}

// ListPublishedEvents возвращает опубликованные события по возрастанию даты начала.
func (s *Storage) ListPublishedEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	const op = "storage.ListPublishedEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE status = 'PUBLISHED'
			  ORDER BY start_date ASC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEventsByOwner возвращает события пользователя по возрастанию даты начала.
func (s *Storage) ListEventsByOwner(ctx context.Context, ownerUID string) ([]*models.Event, error) {
	const op = "storage.ListEventsByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE owner_uid = $1
			  ORDER BY start_date ASC`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
