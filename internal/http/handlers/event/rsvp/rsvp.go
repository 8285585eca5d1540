// Package rsvp реализует HTTP-обработчик отметки участия в событии.
//
// Повторная отметка того же пользователя заменяет предыдущий статус.
package rsvp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/event-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-management/internal/http/response"
	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	"github.com/magabrotheeeer/event-management/internal/models"
	services "github.com/magabrotheeeer/event-management/internal/services/event"
)

// Service описывает интерфейс бизнес-логики отметок участия.
type Service interface {
	Rsvp(ctx context.Context, actingUsername string, eventID int, status string) (int, error)
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
// @Summary Отметить участие в событии
// @Description Сохраняет или заменяет статус участия авторизованного пользователя.
// @Tags Events
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "ID события"
// @Param request body models.DummyRSVP true "Статус участия"
// @Success 200 {object} map[string]any "Сохраненная отметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id}/rsvp [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.rsvp"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid event id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}

	var req models.DummyRSVP
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

	rsvpID, err := h.service.Rsvp(r.Context(), username, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownUser):
			log.Error("unknown user", slog.String("username", username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
		case errors.Is(err, services.ErrEventNotFound):
			log.Error("event not found", slog.Int("event_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
		default:
			log.Error("failed to save rsvp", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save rsvp"))
		}
		return
	}

	log.Info("rsvp saved",
		slog.Int("event_id", id),
		slog.String("username", username),
		slog.String("status", req.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       rsvpID,
		"event_id": id,
		"status":   req.Status,
	}))
}
