package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mrpestoque/internal/config"
	"mrpestoque/internal/infra"
	"mrpestoque/internal/metrics"
	"mrpestoque/internal/middleware"
	"mrpestoque/internal/repository"
	"mrpestoque/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db   *gorm.DB
		repo repository.ComponenteRepository
	)
	switch cfg.StoreDriver {
	case "memory":
		repo = repository.NewMemoryComponenteRepository()
	case "postgres":
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		repo = repository.NewComponenteRepository(db)
	default:
		log.Fatal().Str("store_driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}

	if cfg.SeedComponents {
		n, err := repo.SemearSeVazio(ctx, infra.ComponentesIniciais())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed components")
		}
		if n > 0 {
			log.Info().Int("componentes", n).Msg("estoque inicial semeado")
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.RunPurge(ctx, 5*time.Minute)

	r, err := router.New(cfg, router.Deps{
		DB:      db,
		Redis:   rdb,
		Repo:    repo,
		Metrics: metrics.New(),
		Limiter: limiter,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("store", cfg.StoreDriver).Msgf("MRP estoque listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
