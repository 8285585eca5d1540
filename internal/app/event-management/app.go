// Package eventmanagement собирает основное приложение: хранилище, миграции,
// кеш, брокер уведомлений, сервисы и HTTP-сервер.
package eventmanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/event-management/internal/cache"
	"github.com/magabrotheeeer/event-management/internal/config"
	customjwt "github.com/magabrotheeeer/event-management/internal/lib/jwt"
	"github.com/magabrotheeeer/event-management/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/event-management/internal/lib/sl"
	"github.com/magabrotheeeer/event-management/internal/migrations"
	authservice "github.com/magabrotheeeer/event-management/internal/services/auth"
	eventservice "github.com/magabrotheeeer/event-management/internal/services/event"
	"github.com/magabrotheeeer/event-management/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := customjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	if err := authService.SeedDefaultUsers(ctx); err != nil {
		return nil, err
	}

	// Брокер не обязателен: без него публикация событий работает,
	// но письма владельцам не рассылаются.
	var amqpConn *amqp.Connection
	var publisher eventservice.Publisher
	if cfg.RabbitMQURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, notifications are disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
			if err != nil {
				return nil, err
			}
			publisher = rabbitmq.NewEventPublisher(ch)
		}
	}

	eventService := eventservice.NewEventService(db, db, cacheRedis, publisher, cfg.CacheTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, eventService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", sl.Err(closeErr))
		}
		if a.amqp != nil {
			if closeErr := a.amqp.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
