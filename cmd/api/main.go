// Package main is the entry point for the receipt split API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/receipt-split/backend/config"
	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/infra/cache"
	"github.com/receipt-split/backend/internal/infra/db"
	"github.com/receipt-split/backend/internal/infra/dependency"
	"github.com/receipt-split/backend/internal/infra/logging"
	"github.com/receipt-split/backend/internal/infra/scheduler"
	"github.com/receipt-split/backend/internal/integration/email"
	"github.com/receipt-split/backend/internal/integration/email/templates"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.Log)

	slog.Info("Starting receipt split API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	conn, err := db.Open(context.Background(), &cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := db.Migrate(conn); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	injector := dependency.NewInjector(cfg, conn, redisClient)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Email.WorkerEnabled {
		worker, err := newEmailWorker(cfg, injector.EmailQueue, injector.Metrics)
		if err != nil {
			slog.Error("Failed to create email worker", "error", err)
			os.Exit(1)
		}
		go worker.Start(ctx)
	}

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.NewScheduler(cfg.Scheduler, injector.EmailQueue, injector.RateLimiter)
		jobs.Start()
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stop()
	if jobs != nil {
		jobs.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

// newEmailWorker sends through Resend when an API key is configured and
// drops emails into an in-memory sender otherwise.
func newEmailWorker(cfg *config.Config, queue adapter.EmailQueueRepository, observer email.DeliveryObserver) (*email.Worker, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will not be delivered")
		sender = email.NewMockEmailSender()
	}

	return email.NewWorker(queue, sender, renderer, observer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Lease:        cfg.Email.ClaimLease,
	}), nil
}
