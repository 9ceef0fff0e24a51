package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"soundpay/internal/amqp"
	"soundpay/internal/announce"
	gtts "soundpay/internal/announce/google"
	"soundpay/internal/config"
	"soundpay/internal/dedup"
	"soundpay/internal/log"
	"soundpay/internal/services"
	"soundpay/internal/storage"
	"soundpay/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	logger.Info("Starting soundpay-worker")

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
	}

	var announcer announce.Announcer = announce.LogAnnouncer{}
	if cfg.AnnouncementsEnabled {
		if synth, err := gtts.NewFromEnv(context.Background()); err != nil {
			logger.Warn("Text-to-Speech unavailable, announcements will be log-only", log.FieldError, err)
		} else {
			announcer = synth
		}
	}

	service := services.NewPaymentService(repo, deduper, announcer, cfg.Language(), cfg.AnnouncementsEnabled)
	notificationWorker := worker.NewNotificationWorker(service)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeNotifications(ctx, notificationWorker.HandleEvent)
	})

	logger.Info("Worker consuming notification events",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
