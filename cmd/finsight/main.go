package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"finsight/internal/amqp"
	"finsight/internal/backend"
	"finsight/internal/cli"
	apphttp "finsight/internal/http"
	"finsight/internal/insights"
	"finsight/internal/ledger"
	applog "finsight/internal/log"
	"finsight/internal/reconcile"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateStore(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize record store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	// Ledger export is optional; the API works without a broker.
	var publisher ledger.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without ledger export", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	generator := insights.NewGeminiClient(cfg.GeminiAPIKey)
	svc := insights.NewService(result.Store, generator, reconcile.DefaultConfig())

	srv := apphttp.NewServer(":"+cfg.Port, result.Store, svc, publisher, cfg.InsightCacheTTL)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	// Insight generation can hold the response open while the upstream
	// model call runs, so the write timeout outlives that call.
	srv.WriteTimeout = 90 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Store cleanup error", "error", err)
			}
		}
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, cleanup)

	logger.Info("Starting finsight server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
