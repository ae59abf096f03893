package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/srxshiv/personal-finance-tracker/internal/backend"
	"github.com/srxshiv/personal-finance-tracker/internal/cli"
	"github.com/srxshiv/personal-finance-tracker/internal/currency"
	apphttp "github.com/srxshiv/personal-finance-tracker/internal/http"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
	"github.com/srxshiv/personal-finance-tracker/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", applog.FieldError, err.Error())
		os.Exit(1)
	}

	opts := []services.Option{
		services.WithSpikeFloor(cfg.InsightSpikeFloorCents),
		services.WithFormatter(currency.INR{}),
	}
	if result.Publisher != nil {
		opts = append(opts, services.WithPublisher(result.Publisher))
	}
	svc := services.NewTrackerService(result.Store, opts...)

	srv := apphttp.NewServer(apphttp.Config{
		Addr:     ":" + cfg.Port,
		CacheTTL: cfg.CacheTTL,
	}, svc, logger)
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err.Error())
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", applog.FieldError, err.Error())
			}
		}
	})

	logger.Info("Starting tracker server",
		"port", cfg.Port,
		"backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
