package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"ledgerly/internal/amqp"
	"ledgerly/internal/config"
	"ledgerly/internal/log"
	"ledgerly/internal/storage"
	"ledgerly/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{Level: parseLevel(cfg.LogLevel), Component: log.ComponentWorker})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for ledgerly-worker")
		os.Exit(1)
	}

	logger.Info("Starting ledgerly-worker", "queue", cfg.AMQPQueue)

	if err := storage.RunMigrations(cfg.SQLiteDBPath); err != nil {
		logger.Error("Failed to migrate primary database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	primary, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open primary database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer primary.Close()

	if err := storage.RunMigrations(cfg.MirrorDBPath); err != nil {
		logger.Error("Failed to migrate mirror database", log.FieldError, err, "path", cfg.MirrorDBPath)
		os.Exit(1)
	}
	mirror, err := storage.NewSQLiteRepository(cfg.MirrorDBPath)
	if err != nil {
		logger.Error("Failed to open mirror database", log.FieldError, err, "path", cfg.MirrorDBPath)
		os.Exit(1)
	}
	defer mirror.Close()

	w := worker.NewEventWorker(primary, mirror, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
			func(msg *amqp.LedgerEventMessage) error {
				return w.HandleEvent(ctx, msg)
			})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
