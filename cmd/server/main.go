package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/23BCE0066/Hirely/internal/aggregator"
	"github.com/23BCE0066/Hirely/internal/ai"
	"github.com/23BCE0066/Hirely/internal/common/aws"
	"github.com/23BCE0066/Hirely/internal/common/config"
	"github.com/23BCE0066/Hirely/internal/common/database"
	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/observability"
	"github.com/23BCE0066/Hirely/internal/notify"
	"github.com/23BCE0066/Hirely/internal/providers"
	"github.com/23BCE0066/Hirely/internal/providers/adzuna"
	"github.com/23BCE0066/Hirely/internal/providers/serpapi"
	"github.com/23BCE0066/Hirely/internal/server"
	"github.com/23BCE0066/Hirely/internal/store/cache"
	"github.com/23BCE0066/Hirely/internal/store/combined"
	"github.com/23BCE0066/Hirely/internal/store/remote"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting Hirely API server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("hirely-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Local cache store (Redis) ---
	redisClient := database.NewRedis(cfg.Database.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		// Degraded but usable: reads fall through to the remote store.
		zapLog.Warn("redis unreachable at startup, cache degraded", zap.Error(err))
	}
	cacheStore := cache.New(redisClient.Client, cfg.Database.Redis.KeyPrefix, log)

	// --- Remote store client ---
	remoteClient := remote.NewClient(cfg.Store.BaseURL, config.GetDuration(cfg.Store.Timeout), log)

	// --- Combined stores ---
	jobs := combined.NewJobs(remoteClient, cacheStore, log)
	applications := combined.NewApplications(remoteClient, cacheStore, log)
	profiles := combined.NewProfiles(remoteClient, cacheStore, log)

	// --- External listing providers ---
	serp := serpapi.New(cfg.Providers.SerpAPI, log)
	adz := adzuna.New(cfg.Providers.Adzuna, log)

	agg := aggregator.New(jobs, []providers.Searcher{serp, adz}, cfg.Providers.SerpAPI.PageBudget, log)

	// --- Optional AI assistant ---
	var assistant server.AIAssistant
	if cfg.AI.APIKey != "" {
		a, err := ai.New(ctx, cfg.AI.APIKey, cfg.AI.Model, log)
		if err != nil {
			zapLog.Warn("AI assistant disabled", zap.Error(err))
		} else {
			assistant = a
		}
	} else {
		zapLog.Info("AI assistant disabled: no API key configured")
	}

	// --- Optional email notifications ---
	var notifier server.StatusNotifier
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("email notifications disabled", zap.Error(err))
		} else {
			notifier = notify.New(sesClient, cfg.Notifications.Email.FromEmail, log)
		}
	}

	srv := server.New(server.Deps{
		Aggregator:   agg,
		Jobs:         jobs,
		Applications: applications,
		Profiles:     profiles,
		Serp:         serp,
		Adzuna:       adz,
		PageBudget:   cfg.Providers.SerpAPI.PageBudget,
		Assistant:    assistant,
		Notifier:     notifier,
		Obs:          obs,
		Log:          log,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
