// Package create реализует HTTP-обработчик создания события.
//
// Событие всегда создается в статусе DRAFT, владельцем становится
// пользователь из JWT-контекста.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/event-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-management/internal/http/response"
	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	"github.com/magabrotheeeer/event-management/internal/models"
	services "github.com/magabrotheeeer/event-management/internal/services/event"
)

// Service описывает интерфейс бизнес-логики создания события.
type Service interface {
	Create(ctx context.Context, actingUsername string, req models.DummyEvent) (*models.Event, error)
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
// @Summary Создать событие
// @Description Создает событие в статусе DRAFT от имени авторизованного пользователя.
// @Tags Events
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyEvent true "Данные события"
// @Success 200 {object} map[string]any "Созданное событие"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"

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

	var req models.DummyEvent
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := validator.New().Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	event, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownUser):
			log.Error("unknown user", slog.String("username", username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
		case errors.Is(err, services.ErrValidation):
			log.Error("invalid event data", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to create event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create event"))
		}
		return
	}

	log.Info("event created", slog.Int("event_id", event.ID), slog.String("owner", username))
	render.JSON(w, r, response.StatusOKWithData(event))
}
