// Package services содержит бизнес-логику для управления событиями и кешированием.
//
// Доступ к операциям записи проверяется по таблице allowedRoles: роль
// вызывающего передается явным параметром, глобального состояния сессии нет.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	"github.com/magabrotheeeer/event-management/internal/models"
	"github.com/magabrotheeeer/event-management/internal/storage/repository"
)

// ErrForbidden возвращается, когда роли вызывающего недостаточно для операции.
var ErrForbidden = errors.New("forbidden")

// ErrUnknownUser возвращается, когда действующий пользователь не найден в базе.
var ErrUnknownUser = errors.New("unknown acting user")

// ErrEventNotFound возвращается, когда событие по ID отсутствует.
var ErrEventNotFound = repository.ErrEventNotFound

// ErrValidation возвращается при нарушении ограничений полей события.
var ErrValidation = errors.New("validation failed")

// Операции, участвующие в проверке ролей.
const (
	opCreate = "event.create"
	opUpdate = "event.update"
)

// allowedRoles задает разрешённые роли для каждой операции записи.
// Проверка выполняется в начале операции, а не разбросана по коду.
var allowedRoles = map[string][]string{
	opCreate: {models.RoleAdmin, models.RoleUser},
	opUpdate: {models.RoleAdmin},
}

func roleAllowed(op, role string) bool {
	for _, allowed := range allowedRoles[op] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Регионы кеша. У каждого региона свои ключи и своя зона инвалидации.
const (
	regionPublishedEvents = "published_events"
	regionEventCapacity   = "event_capacity"
)

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	// CreateEvent добавляет новое событие и возвращает созданную запись.
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	// UpdateEvent перезаписывает поля события по ID.
	UpdateEvent(ctx context.Context, event models.Event, id int) (*models.Event, error)
	// GetEvent возвращает событие по ID.
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	// ListPublishedEvents возвращает страницу опубликованных событий.
	ListPublishedEvents(ctx context.Context, limit, offset int) ([]*models.Event, error)
	// ListEventsByOwner возвращает события пользователя.
	ListEventsByOwner(ctx context.Context, ownerUID string) ([]*models.Event, error)
	// UpsertRSVP создает или обновляет отклик пары (пользователь, событие).
	UpsertRSVP(ctx context.Context, rsvp models.RSVP) (int, error)
	// CountAttendees подсчитывает отклики ATTENDING для события.
	CountAttendees(ctx context.Context, eventID int) (int, error)
}

// UserRepository описывает выборку пользователей, нужную событийной логике.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
	// InvalidateRegion удаляет все ключи региона.
	InvalidateRegion(region string) error
}

// Publisher публикует уведомление о переходе события в статус PUBLISHED.
type Publisher interface {
	PublishEventPublished(info models.EventPublishedInfo) error
}

// EventService реализует бизнес-логику работы с событиями, включая кеширование.
type EventService struct {
	repo      EventRepository
	users     UserRepository
	cache     Cache
	publisher Publisher // может быть nil, если брокер не подключен
	cacheTTL  time.Duration
	log       *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
// Нулевой cacheTTL заменяется часом.
func NewEventService(repo EventRepository, users UserRepository, cache Cache,
	publisher Publisher, cacheTTL time.Duration, log *slog.Logger) *EventService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &EventService{
		repo:      repo,
		users:     users,
		cache:     cache,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// ListPublished возвращает страницу опубликованных событий по возрастанию даты начала.
//
// Результат читается сквозь кеш: ключ строится из номера и размера страницы,
// на промахе страница берется из хранилища и записывается в кеш.
// Параллельные промахи по одному ключу могут записать кеш дважды —
// значения эквивалентны, побеждает последняя запись.
func (s *EventService) ListPublished(ctx context.Context, page, size int) ([]*models.Event, error) {
	cacheKey := fmt.Sprintf("%s:%d:%d", regionPublishedEvents, page, size)

	var cached []*models.Event
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return cached, nil
	}

	events, err := s.repo.ListPublishedEvents(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, events, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache published events", slog.String("key", cacheKey), sl.Err(err))
	}
	return events, nil
}

// Create создает новое событие со статусом DRAFT и владельцем — действующим пользователем.
//
// Кеш не трогается: черновики не попадают в публичную выдачу.
func (s *EventService) Create(ctx context.Context, actingUsername string, req models.DummyEvent) (*models.Event, error) {
	user, err := s.users.GetUserByUsername(ctx, actingUsername)
	if err != nil {
		return nil, ErrUnknownUser
	}

	startDate, endDate, err := parseEventDates(req)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Status:      models.StatusDraft,
		OwnerUID:    user.UID,
	}
	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new event", slog.Int("id", created.ID), slog.String("owner", actingUsername))
	return created, nil
}

// Update перезаписывает поля события. Операция доступна только роли admin.
//
// После записи регион published_events инвалидируется целиком: по полям
// обновления нельзя выборочно понять, какие страницы выдачи затронуты.
// Инвалидация завершается до возврата, поэтому успешный ответ гарантирует,
// что следующий ListPublished любой страницы увидит обновлённые данные.
func (s *EventService) Update(ctx context.Context, actingRole string, id int, req models.DummyEvent) (*models.Event, error) {
	if !roleAllowed(opUpdate, actingRole) {
		return nil, ErrForbidden
	}

	prev, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	startDate, endDate, err := parseEventDates(req)
	if err != nil {
		return nil, err
	}

	status := prev.Status
	if req.Status != "" {
		status = req.Status
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Status:      status,
	}
	updated, err := s.repo.UpdateEvent(ctx, event, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated event in storage", slog.Int("id", id))

	if err := s.cache.InvalidateRegion(regionPublishedEvents); err != nil {
		return nil, fmt.Errorf("failed to invalidate published events cache: %w", err)
	}

	if prev.Status != models.StatusPublished && updated.Status == models.StatusPublished {
		s.notifyPublished(ctx, updated)
	}
	return updated, nil
}

// AttendeeCount возвращает число откликов ATTENDING для события, используя кеш.
//
// Регион event_capacity не инвалидируется обновлением события, только
// записью отклика; TTL страхует от прочих устаревших значений.
func (s *EventService) AttendeeCount(ctx context.Context, eventID int) (int, error) {
	cacheKey := fmt.Sprintf("%s:%d", regionEventCapacity, eventID)

	var cached int
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		return 0, err
	}
	if found {
		return cached, nil
	}

	count, err := s.repo.CountAttendees(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Set(cacheKey, count, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache attendee count", slog.String("key", cacheKey), sl.Err(err))
	}
	return count, nil
}

// ListOwn возвращает события действующего пользователя по возрастанию даты начала.
func (s *EventService) ListOwn(ctx context.Context, actingUsername string) ([]*models.Event, error) {
	user, err := s.users.GetUserByUsername(ctx, actingUsername)
	if err != nil {
		return nil, ErrUnknownUser
	}
	return s.repo.ListEventsByOwner(ctx, user.UID)
}

// Rsvp создает или обновляет отклик действующего пользователя на событие
// и инвалидирует закешированный счётчик посещаемости этого события.
func (s *EventService) Rsvp(ctx context.Context, actingUsername string, eventID int, status string) (int, error) {
	user, err := s.users.GetUserByUsername(ctx, actingUsername)
	if err != nil {
		return 0, ErrUnknownUser
	}
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return 0, err
	}

	id, err := s.repo.UpsertRSVP(ctx, models.RSVP{
		UserUID: user.UID,
		EventID: eventID,
		Status:  status,
	})
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("%s:%d", regionEventCapacity, eventID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		return 0, fmt.Errorf("failed to invalidate attendee count cache: %w", err)
	}
	return id, nil
}

// notifyPublished отправляет уведомление о публикации события владельцу.
// Ошибки публикации не откатывают обновление, только логируются.
func (s *EventService) notifyPublished(ctx context.Context, event *models.Event) {
	if s.publisher == nil {
		return
	}
	owner, err := s.users.GetUserByUID(ctx, event.OwnerUID)
	if err != nil {
		s.log.Error("failed to resolve event owner for notification", sl.Err(err))
		return
	}
	info := models.EventPublishedInfo{
		EventID:       event.ID,
		Title:         event.Title,
		StartDate:     event.StartDate,
		OwnerUsername: owner.Username,
		OwnerEmail:    owner.Email,
	}
	if err := s.publisher.PublishEventPublished(info); err != nil {
		s.log.Error("failed to publish event notification", sl.Err(err))
		return
	}
	s.log.Info("published event notification", slog.Int("event_id", event.ID))
}

// parseEventDates разбирает даты запроса и проверяет, что обе лежат в будущем.
// Порядок дат между собой не проверяется.
func parseEventDates(req models.DummyEvent) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date", ErrValidation)
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date", ErrValidation)
	}
	now := time.Now()
	if !startDate.After(now) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date must be in the future", ErrValidation)
	}
	if !endDate.After(now) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date must be in the future", ErrValidation)
	}
	return startDate, endDate, nil
}
