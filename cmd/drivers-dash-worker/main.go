package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"driversdash/internal/amqp"
	"driversdash/internal/config"
	"driversdash/internal/sheets"
	gsheet "driversdash/internal/sheets/google"
	mem "driversdash/internal/sheets/memory"
	"driversdash/internal/storage"
	"driversdash/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting drivers-dash-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the backup worker")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// Without a spreadsheet configured the worker still drains the queue but
	// only keeps rows in memory, which is useful when trying things locally.
	var appender sheets.BackupAppender
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		appender = client
		logger.Info("Google Sheets client initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		appender = mem.New()
		logger.Info("Google Sheets disabled - mirroring to memory only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backupWorker := worker.NewBackupWorker(store, appender)

	// Catch entries created before this worker came up.
	logger.Info("Performing startup backup sweep...")
	if err := backupWorker.SweepOnce(ctx); err != nil {
		logger.Error("Startup sweep failed", "error", err)
		// Don't exit - the consumer still covers new entries.
	}

	go func() {
		err := amqpClient.ConsumeEntryCreated(ctx, func(msg *amqp.EntryCreatedMessage) error {
			return backupWorker.HandleEntryCreated(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
		}
		cancel()
	}()

	// Periodic sweep for events lost while the broker or worker was down.
	ticker := time.NewTicker(cfg.BackupPollInterval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := backupWorker.SweepOnce(ctx); err != nil {
					logger.Error("Periodic sweep failed", "error", err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker stopped")
}
