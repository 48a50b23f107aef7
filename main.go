package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"fakestore/internal/config"
	"fakestore/internal/database"
	"fakestore/internal/logger"
	"fakestore/internal/metrics"
	"fakestore/internal/server"
	"fakestore/internal/services"
	"fakestore/pkg/fakedata"
	"fakestore/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// run returns only after its deferred cleanups, so exiting here skips nothing.
	if err := run(cfg, zlog); err != nil {
		zlog.Error("Server stopped with error", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	_ = zlog.Sync()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	// --- Database ---
	gormLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := database.Open(cfg.DB, gormLevel)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zlog.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, zlog)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				zlog.Error("Error closing RabbitMQ client", zap.Error(err))
			}
		}()
		events = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.AuditHandler(zlog.Named("audit"))); err != nil {
			zlog.Error("Failed to start RabbitMQ consumer", zap.Error(err))
		}
	} else {
		zlog.Info("RABBITMQ_URL not set, domain events are disabled")
	}

	app := server.New(server.Deps{
		Config:  cfg,
		DB:      db,
		Logger:  zlog,
		Fake:    fakedata.New(0),
		Events:  events,
		Metrics: metrics.NewHTTPMetrics(),
	})

	// --- Start HTTP Server ---
	zlog.Info("Starting server", zap.String("port", cfg.AppPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit:
	}

	zlog.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		zlog.Error("Error during Fiber shutdown", zap.Error(err))
	}
	zlog.Info("Server gracefully stopped")
	return nil
}
