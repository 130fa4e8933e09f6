package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exercisetracker/internal/config"
	"exercisetracker/internal/database"
	"exercisetracker/internal/logger"
	"exercisetracker/internal/services"
	"exercisetracker/pkg/rabbitmq"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	store, err := database.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	// --- Events (optional) ---
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, zlog)
		if err != nil {
			zlog.Error("failed to initialize RabbitMQ client, events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			publisher = mqClient
			if cfg.ConsumeEvents {
				if err := mqClient.ConsumeEvents(ctx, rabbitmq.LogEvents(zlog)); err != nil {
					zlog.Error("failed to start event consumer", zap.Error(err))
				}
			}
		}
	}

	app := NewApp(cfg, store, publisher, zlog)

	// --- Start HTTP Server ---
	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Addr()), zap.String("store", store.Driver))
		if err := app.Listen(cfg.Addr()); err != nil {
			zlog.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down server")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		zlog.Error("error during server shutdown", zap.Error(err))
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		zlog.Error("error closing store", zap.Error(err))
	}
	zlog.Info("server gracefully stopped")
}
