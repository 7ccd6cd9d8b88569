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

	"github.com/joho/godotenv"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/bootstrap"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/config"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/observability/logging"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/observability/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics()
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeRebuildRequested(ctx, func(handlerCtx context.Context, reason string) error {
		rebuildCtx, cancel := context.WithTimeout(handlerCtx, 10*time.Minute)
		defer cancel()

		finish := workerMetrics.StartRebuild()
		entries, err := app.RebuildUC.Rebuild(rebuildCtx)
		finish(entries, err)
		if err != nil {
			return err
		}
		logger.Info("clause_index_rebuilt", "reason", reason, "entries", entries)
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
