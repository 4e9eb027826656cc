package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/23BCE0066/Hirely/internal/common/config"
	"github.com/23BCE0066/Hirely/internal/common/database"
	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/storeapi"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting Hirely store API...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	if err := config.ValidateStoreAPI(cfg); err != nil {
		zapLog.Fatal("invalid store API config", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Postgres with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres unavailable", zap.Error(err))
	}
	defer pg.Close()

	repo := storeapi.NewRepository(pg.DB, log)
	if err := repo.Migrate(ctx); err != nil {
		zapLog.Fatal("migration failed", zap.Error(err))
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	storeapi.NewHandler(repo, log).Register(engine)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Store.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("store API listening", zap.Int("port", cfg.Store.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	zapLog.Info("Shutdown signal received, stopping store API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}
	zapLog.Info("Store API stopped")
}
