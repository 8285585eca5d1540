// Package listown реализует HTTP-обработчик списка событий текущего пользователя.
package listown

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-management/internal/http/response"
	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	"github.com/magabrotheeeer/event-management/internal/models"
	services "github.com/magabrotheeeer/event-management/internal/services/event"
)

// Service описывает интерфейс бизнес-логики выборки собственных событий.
type Service interface {
	ListOwn(ctx context.Context, username string) ([]*models.Event, error)
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
// @Summary Мои события
// @Description Возвращает все события, созданные авторизованным пользователем, включая черновики.
// @Tags Events
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Список событий"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listown"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("missing username in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	events, err := h.service.ListOwn(r.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			log.Error("unknown user", slog.String("username", username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		log.Error("failed to list own events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list events"))
		return
	}

	log.Info("listed own events", slog.String("username", username), slog.Int("count", len(events)))
	render.JSON(w, r, response.StatusOKWithData(events))
}
