// Package main is the entry point for the tour calendar API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/tourcal/internal/config"
	"github.com/pkordes/tourcal/internal/events"
	"github.com/pkordes/tourcal/internal/handler"
	"github.com/pkordes/tourcal/internal/middleware"
	"github.com/pkordes/tourcal/internal/repo"
	"github.com/pkordes/tourcal/internal/selection"
	"github.com/pkordes/tourcal/internal/service"
	"github.com/pkordes/tourcal/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		// goose needs database/sql; borrow connections from the same pool.
		sqlDB := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(context.Background(), sqlDB)
		sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", n)
	}

	// --- Selection store --------------------------------------------------
	// With Redis a token is a one-shot key; without it the selection is
	// encoded into a signed token.
	var store service.SelectionStore
	if cfg.RedisURL == "" {
		secret := []byte(cfg.SelectionSecret)
		if len(secret) == 0 {
			secret = make([]byte, 32)
			if _, err := rand.Read(secret); err != nil {
				slog.Error("failed to generate selection secret", "error", err)
				os.Exit(1)
			}
			slog.Warn("SELECTION_SECRET not set; selection tokens will not survive a restart")
		}
		store = selection.NewTokenStore(secret)
	} else {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = selection.NewRedisStore(rdb, cfg.SelectionTTL)
		slog.Info("redis selection store enabled", "ttl", cfg.SelectionTTL.String())
	}

	// --- Events -----------------------------------------------------------
	var publisher service.EventPublisher = events.LogPublisher{Log: logger}
	if len(cfg.KafkaBrokers) > 0 {
		p := events.NewPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaBookingTopic))
		defer func() {
			if err := p.Close(); err != nil {
				slog.Error("failed to close kafka writer", "error", err)
			}
		}()
		publisher = p
		slog.Info("kafka publishing enabled", "topic", cfg.KafkaBookingTopic)
	}

	// --- Services ---------------------------------------------------------
	tours := service.NewTourService(repo.NewTourRepo(pool), repo.NewAvailabilityRepo(pool), logger, time.Now)
	selections := service.NewSelectionService(store)
	bookings := service.NewBookingService(repo.NewBookingRepo(pool), publisher, logger, time.Now)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(tours, selections, bookings, logger).Handler())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
