package main

import (
	"context"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"soundpay/internal/amqp"
	"soundpay/internal/announce"
	gtts "soundpay/internal/announce/google"
	"soundpay/internal/config"
	"soundpay/internal/dedup"
	apphttp "soundpay/internal/http"
	"soundpay/internal/log"
	"soundpay/internal/services"
	"soundpay/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting soundpay")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var deduper dedup.Deduper = dedup.Noop{}
	if cfg.RedisAddr != "" {
		redisDeduper := dedup.NewRedisDeduper(cfg.RedisAddr, cfg.DedupWindow)
		defer redisDeduper.Close()
		deduper = redisDeduper
		logger.Info("Redis dedup enabled", "addr", cfg.RedisAddr, "window", cfg.DedupWindow)
	} else {
		logger.Info("Redis dedup disabled - no REDIS_ADDR provided")
	}

	announcer := buildAnnouncer(context.Background(), cfg, logger)

	service := services.NewPaymentService(repo, deduper, announcer, cfg.Language(), cfg.AnnouncementsEnabled)

	var sink apphttp.NotificationSink
	switch cfg.IngestMode {
	case "queue":
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		sink = services.NewQueueSubmitter(amqpClient)
		logger.Info("Queue ingest mode", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	default:
		sink = services.NewInlineSubmitter(service)
		logger.Info("Inline ingest mode")
	}

	srv := apphttp.NewServer(":"+cfg.Port, sink, repo, repo, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting soundpay server", "port", cfg.Port, "ingest_mode", cfg.IngestMode)
	if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// buildAnnouncer prefers Google Text-to-Speech and falls back to log-only
// announcements when no credentials are configured.
func buildAnnouncer(ctx context.Context, cfg *config.Config, logger *log.Logger) announce.Announcer {
	if !cfg.AnnouncementsEnabled {
		logger.Info("Announcements disabled")
		return announce.LogAnnouncer{}
	}

	synth, err := gtts.NewFromEnv(ctx)
	if err != nil {
		logger.Warn("Text-to-Speech unavailable, announcements will be log-only", log.FieldError, err)
		return announce.LogAnnouncer{}
	}

	logger.Info("Text-to-Speech announcements enabled", "language", cfg.AnnounceLanguage)
	return synth
}
