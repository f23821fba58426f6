package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/bike-sharing-dashboard/internal/api/http"
	"github.com/i474232898/bike-sharing-dashboard/internal/config"
	"github.com/i474232898/bike-sharing-dashboard/internal/dashboard"
	"github.com/i474232898/bike-sharing-dashboard/internal/logging"
	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
	"github.com/i474232898/bike-sharing-dashboard/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logging.Init(os.Stderr, cfg.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	variant, err := dashboard.Lookup(cfg.Variant)
	if err != nil {
		logging.Logger.Fatal("invalid DASHBOARD_VARIANT", "err", err)
	}

	app := httpapi.NewApp(httpapi.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// The dataset is read once; a failed load keeps the server up but every
	// route answers 503 with the reason.
	table, err := loadTable(cfg)
	if err != nil {
		logging.Error("dataset load failed", "source", cfg.DataSource, "err", err)
		httpapi.RegisterUnavailable(app, err)
	} else {
		bounds, _ := table.Bounds()
		logging.Info("dataset loaded", "source", cfg.DataSource, "records", table.Len(), "range", bounds.String())
		httpapi.RegisterRoutes(app, rental.NewService(table), variant)
	}

	go func() {
		logging.Info("listening", "port", cfg.Port, "variant", variant.Name)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logging.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error("error during shutdown", "err", err)
	}
}

func loadTable(cfg *config.AppConfig) (*rental.Table, error) {
	src, err := store.ParseSource(cfg.DataSource, cfg.S3)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	defer cancel()

	return store.Load(ctx, src, cfg.StoreOptions())
}
