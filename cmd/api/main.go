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

	httpadapter "github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/adapters/http"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/bootstrap"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/config"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/observability/logging"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/observability/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	apiMetrics := metrics.NewAPIServerMetrics()
	router := httpadapter.NewRouter(
		app.RetrieveUC,
		app.RetrieveUC,
		app.RebuildUC,
		app.IngestUC,
		app.RegistryUC,
		apiMetrics,
		logger,
	).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_failed", "error", err)
	}
}
