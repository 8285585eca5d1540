// Package listpublic реализует публичный HTTP-обработчик списка опубликованных событий.
//
// Пагинация задается query-параметрами page и size; выдача идет через кеш чтения.
package listpublic

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-management/internal/http/response"
	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	"github.com/magabrotheeeer/event-management/internal/models"
)

// Service описывает интерфейс бизнес-логики публичной выдачи событий.
type Service interface {
	ListPublished(ctx context.Context, page, size int) ([]*models.Event, error)
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
// @Summary Публичный список событий
// @Description Возвращает страницу опубликованных событий по возрастанию даты начала.
// @Tags Events
// @Produce  json
// @Param page query int false "Номер страницы, по умолчанию 1"
// @Param size query int false "Размер страницы, по умолчанию 10"
// @Success 200 {object} map[string]any "Страница событий"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/public [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listpublic"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 10
	}

	events, err := h.service.ListPublished(r.Context(), page, size)
	if err != nil {
		log.Error("failed to list published events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list events"))
		return
	}

	log.Info("listed published events", slog.Int("count", len(events)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"page":   page,
		"size":   size,
		"events": events,
	}))
}
