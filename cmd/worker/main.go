package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/bootstrap"
	"github.com/dmoralesf/brand-guardian/internal/config"
	"github.com/dmoralesf/brand-guardian/internal/core/usecase"
	"github.com/dmoralesf/brand-guardian/internal/observability/logging"
	"github.com/dmoralesf/brand-guardian/internal/observability/metrics"
)

const serviceName = "brand-guardian-worker"

func main() {
	cfg := config.Load()
	logger := logging.Setup(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", workerMetrics.Handler())
	metricsMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeManualCreated(ctx, func(handlerCtx context.Context, manualID string) error {
		indexCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		workerMetrics.StartManual()
		start := time.Now()

		chunks := 0
		if record, err := app.Manuals.GetManualByID(indexCtx, manualID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(record.CreatedAt))
			chunks = len(usecase.ChunkManual(record.Manual))
		}

		indexErr := app.IndexUC.IndexByID(indexCtx, manualID)
		workerMetrics.FinishManual(serviceName, time.Since(start), chunks, indexErr)
		if indexErr != nil {
			return indexErr
		}

		logger.Info("manual_indexed", "manual_id", manualID, "chunks", chunks, "duration_ms", time.Since(start).Milliseconds())
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
