// Package eventmanagement предоставляет маршруты для основного приложения.
package eventmanagement

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/event-management/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/capacity"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/create"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/health"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/listown"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/listpublic"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/rsvp"
	"github.com/magabrotheeeer/event-management/internal/http/handlers/event/update"
	"github.com/magabrotheeeer/event-management/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/event-management/internal/services/auth"
	eventservice "github.com/magabrotheeeer/event-management/internal/services/event"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, eventService *eventservice.EventService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/events/public", listpublic.New(logger, eventService).ServeHTTP)
		r.Get("/events/{id}/capacity", capacity.New(logger, eventService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/events", create.New(logger, eventService).ServeHTTP)
			r.Put("/events/{id}", update.New(logger, eventService).ServeHTTP)
			r.Get("/events/my", listown.New(logger, eventService).ServeHTTP)
			r.Post("/events/{id}/rsvp", rsvp.New(logger, eventService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
