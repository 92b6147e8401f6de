package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/api"
	"github.com/spacesedan/newsnlp/internal/loader"
	"github.com/spacesedan/newsnlp/internal/logging"
	"github.com/spacesedan/newsnlp/internal/monitoring"
	"github.com/spacesedan/newsnlp/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	config.LoadEnv(config.AppEnv())

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logging.InitLogger("info")
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if logging.ParseLevel(cfg.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	models, err := loader.Load(cfg)
	if err != nil {
		slog.Error("[Main] Failed to load models", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := models.Close(); err != nil {
			slog.Warn("[Main] Failed to release models", slog.String("error", err.Error()))
		}
	}()

	metrics := monitoring.NewMetrics()
	monitor := monitoring.NewHealthMonitor(models.SummarizerHealth, models.SentimentHealth, cfg.HealthCheckInterval, metrics)
	go monitor.Run(ctx)

	nlp := service.NewNLP(models.Summarizer, models.Classifier, metrics)
	router := api.NewRouter(api.NewHandler(nlp, monitor), api.RouterConfig{
		MaxBodyBytes: cfg.MaxBodyBytes,
		Metrics:      metrics.Handler(),
		Observer:     metrics,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[Main] HTTP server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] HTTP server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Server shutdown failed", slog.String("error", err.Error()))
	}
}
