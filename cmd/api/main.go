package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/dmoralesf/brand-guardian/internal/adapters/http"
	"github.com/dmoralesf/brand-guardian/internal/bootstrap"
	"github.com/dmoralesf/brand-guardian/internal/config"
	"github.com/dmoralesf/brand-guardian/internal/observability/logging"
	"github.com/dmoralesf/brand-guardian/internal/observability/metrics"
)

const serviceName = "brand-guardian-api"

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

	httpMetrics := metrics.NewHTTPServerMetrics(serviceName)
	router := httpadapter.NewRouter(
		app.BrandUC,
		app.ManualUC,
		app.GenerateUC,
		app.GovernanceUC,
		app.AuditUC,
		app.Profiles,
		app.Storage,
		app.Verifier,
		httpadapter.TrafficConfig{
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			MaxInFlight:    cfg.MaxInFlight,
			QueueTimeout:   time.Duration(cfg.QueueTimeoutMS) * time.Millisecond,
		},
	).WithMetrics(httpMetrics, serviceName)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api_server_failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_failed", "error", err)
	}
}
