package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/i474232898/bike-sharing-dashboard/internal/config"
	"github.com/i474232898/bike-sharing-dashboard/internal/dashboard"
	"github.com/i474232898/bike-sharing-dashboard/internal/logging"
	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
	"github.com/i474232898/bike-sharing-dashboard/internal/store"
	"github.com/i474232898/bike-sharing-dashboard/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The UI owns the terminal, so logs go to a file.
	if err := logging.InitFile(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logging.Close()

	if err := run(cfg); err != nil {
		logging.Error("exiting", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig) error {
	variant, err := dashboard.Lookup(cfg.Variant)
	if err != nil {
		return err
	}

	src, err := store.ParseSource(cfg.DataSource, cfg.S3)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	table, err := store.Load(ctx, src, cfg.StoreOptions())
	cancel()
	if err != nil {
		return err
	}
	logging.Info("dataset loaded", "source", src.Name(), "records", table.Len())

	program := tea.NewProgram(tui.New(rental.NewService(table), variant), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
