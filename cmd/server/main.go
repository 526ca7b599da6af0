package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/patternwork/patternwork-backend/internal/config"
	"github.com/patternwork/patternwork-backend/internal/database"
	"github.com/patternwork/patternwork-backend/internal/handler"
	"github.com/patternwork/patternwork-backend/internal/logger"
	"github.com/patternwork/patternwork-backend/internal/metrics"
	"github.com/patternwork/patternwork-backend/internal/notify"
	"github.com/patternwork/patternwork-backend/internal/repository"
	"github.com/patternwork/patternwork-backend/internal/router"
	"github.com/patternwork/patternwork-backend/internal/service"
	"github.com/patternwork/patternwork-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Bool("require_contact_email", cfg.RequireContactEmail).
		Msg("Starting Patternwork backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	// A missing DATABASE_URL is a recognized degraded mode, not a crash:
	// the server answers, but submissions fail as storage-unavailable
	// until an operator fixes the deployment.
	var store service.AssessmentStore
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		store = repository.NewAssessmentRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, submissions will be rejected as storage-unavailable")
	}

	// ─── Connect to Redis (counters sink) ──────────────────────────────
	var sink metrics.Sink = metrics.NopSink{}
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		sink = metrics.NewRedisSink(rdb, log)
	}

	// ─── Notification sender ───────────────────────────────────────────
	// Missing SMTP credentials silently disable notification mail.
	var sender notify.Sender
	if cfg.NotifierEnabled() {
		s, err := notify.NewSMTPSender(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create SMTP sender")
		}
		sender = s
		log.Info().Str("host", cfg.SMTPHost).Msg("Notification mail enabled")
	} else {
		log.Info().Msg("SMTP not configured, notification mail disabled")
	}

	// ─── Initialize Service & Handlers ─────────────────────────────────
	assessmentService := service.NewAssessmentService(
		store, sender, sink,
		cfg.RequireContactEmail, cfg.StorageTimeout, log,
	)

	handlers := &router.Handlers{
		Assessment: handler.NewAssessmentHandler(assessmentService),
		Question:   handler.NewQuestionHandler(),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
