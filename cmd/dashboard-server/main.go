// cmd/dashboard-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sql-dashboard/internal/common/config"
	"sql-dashboard/internal/common/database"
	"sql-dashboard/internal/common/logger"
	"sql-dashboard/internal/common/observability"
	"sql-dashboard/internal/history"
	"sql-dashboard/internal/llm"
	"sql-dashboard/internal/server"
	"sql-dashboard/internal/translator"
	"sql-dashboard/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dashboard server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("dashboard-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		// Release the pool from the previous failed attempt
		if pg != nil {
			pg.Close()
			pg = nil
		}
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if cfg.Database.Postgres.SeedSampleData {
		if err := pg.EnsureSampleData(ctx); err != nil {
			zapLog.Fatal("sample data seeding failed", zap.Error(err))
		}
		zapLog.Info("Sample data ensured")
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		if redis != nil {
			redis.Close()
			redis = nil
		}
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Query resolver; remote tier only with a credential ---
	var generator translator.SQLGenerator
	if cfg.APIs.OpenAI.Enabled() {
		generator = llm.NewClient(&llm.Config{
			BaseURL:     cfg.APIs.OpenAI.BaseURL,
			APIKey:      cfg.APIs.OpenAI.APIKey,
			Model:       cfg.APIs.OpenAI.Model,
			Timeout:     config.GetDuration(cfg.APIs.OpenAI.Timeout),
			MaxRetries:  cfg.APIs.OpenAI.MaxRetries,
			MaxTokens:   cfg.APIs.OpenAI.MaxTokens,
			Temperature: cfg.APIs.OpenAI.Temperature,
		}, log)
		zapLog.Info("Remote SQL generation enabled", zap.String("model", cfg.APIs.OpenAI.Model))
	} else {
		zapLog.Info("No OpenAI API key configured, remote SQL generation disabled")
	}

	resolver := translator.NewDefaultResolver(generator, log)
	recorder := history.NewRecorder(redis, cfg.History, log)

	srv := server.New(cfg.Server, resolver, pg, recorder, registry.DefaultRegistry(), obs, log)

	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during server shutdown", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}
