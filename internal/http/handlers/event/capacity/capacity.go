// Package capacity реализует публичный HTTP-обработчик счетчика участников события.
package capacity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-management/internal/http/response"
	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	services "github.com/magabrotheeeer/event-management/internal/services/event"
)

// Service описывает интерфейс бизнес-логики счетчика участников.
type Service interface {
	AttendeeCount(ctx context.Context, eventID int) (int, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Количество участников события
// @Description Возвращает число подтвержденных участников события, значение кешируется.
// @Tags Events
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} map[string]any "Количество участников"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id}/capacity [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.capacity"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid event id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}

	count, err := h.service.AttendeeCount(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			log.Error("event not found", slog.Int("event_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
			return
		}
		log.Error("failed to count attendees", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count attendees"))
		return
	}

	log.Info("counted attendees", slog.Int("event_id", id), slog.Int("count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"event_id":  id,
		"attendees": count,
	}))
}
