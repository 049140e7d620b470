// @title                       College Event Platform API
// @version                     1.0
// @description                 Accounts, events, registrations and recommendations for college events.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusevents/event-platform/internal/api"
	"github.com/campusevents/event-platform/internal/api/handler"
	"github.com/campusevents/event-platform/internal/core/service"
	"github.com/campusevents/event-platform/internal/infrastructure/db/mongo"
	"github.com/campusevents/event-platform/internal/infrastructure/db/redis"
	"github.com/campusevents/event-platform/internal/pkg/config"
	"github.com/campusevents/event-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet; fall back to a default one.
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.ForEnv(cfg.IsDevelopment(), cfg.LogLevel))

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure mongodb indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		PoolSize:  cfg.Redis.PoolSize,
		OpTimeout: cfg.Redis.OpTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	events := mongo.NewEventRepository(db)
	registrations := mongo.NewRegistrationRepository(db)
	guard := redis.NewRegistrationGuard(rdb, cfg.Redis.GuardTTL)

	// --- Services ---
	router := api.NewRouter(api.Deps{
		Auth:            service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Users:           service.NewUserService(users, logger.Component("users")),
		Events:          service.NewEventService(events, users, logger.Component("events")),
		Registrations:   service.NewRegistrationService(events, registrations, guard, logger.Component("registrations")),
		Recommendations: service.NewRecommendationService(users, events, registrations, logger.Component("recommendations")),
		JWTSecret:       cfg.JWTSecret,
		AuthRateLimit:   cfg.AuthRateLimit,
		Logger:          logger.Component("http"),
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
