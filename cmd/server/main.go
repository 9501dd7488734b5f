package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ga-Alves/open-flag/internal/api"
	"github.com/Ga-Alves/open-flag/internal/core/service"
	"github.com/Ga-Alves/open-flag/internal/infrastructure/config"
	redisdb "github.com/Ga-Alves/open-flag/internal/infrastructure/db/redis"
	"github.com/Ga-Alves/open-flag/internal/infrastructure/upstream"
	"github.com/Ga-Alves/open-flag/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	loc := time.Local
	if cfg.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
		}
		loc = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	client := upstream.NewClient(cfg.Upstream.BaseURL, sessionStore, log)

	flagService := service.NewFlagService(client, loc, log)
	authService := service.NewAuthService(client, sessionStore, cfg.JWTSecret, cfg.SessionTTL, log)

	e := api.NewRouter(api.Deps{
		FlagService:  flagService,
		AuthService:  authService,
		SessionStore: sessionStore,
		Upstream:     client,
		Redis:        rdb,
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("gateway started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
