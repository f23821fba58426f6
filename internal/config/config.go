package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/bike-sharing-dashboard/internal/store"
)

type AppConfig struct {
	// DataSource is a file path or an s3://bucket/key location.
	DataSource string
	Format     store.Format
	Sheet      string
	Columns    store.Columns

	S3 store.S3Config

	// LoadTimeout bounds the one-time dataset load at startup.
	LoadTimeout time.Duration

	Variant  string
	LogLevel string
	LogFile  string

	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataSource = getenvDefault("DATA_SOURCE", "main_data.csv")
	format, err := store.ParseFormat(os.Getenv("DATA_FORMAT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATA_FORMAT: %w", err)
	}
	cfg.Format = format
	cfg.Sheet = os.Getenv("DATA_SHEET")
	cfg.Columns = loadColumns()

	cfg.S3 = store.S3Config{
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		Region:          getenvDefault("S3_REGION", "auto"),
	}

	if cfg.LoadTimeout, err = getenvDuration("LOAD_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	cfg.Variant = getenvDefault("DASHBOARD_VARIANT", "analytics")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFile = getenvDefault("LOG_FILE", "bike-sharing-tui.log")

	cfg.Port = getenvDefault("PORT", "8080")
	if cfg.ReadTimeout, err = getenvDuration("HTTP_READ_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getenvDuration("HTTP_WRITE_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StoreOptions returns the decoder options for the configured source.
func (c *AppConfig) StoreOptions() store.Options {
	return store.Options{
		Format:  c.Format,
		Sheet:   c.Sheet,
		Columns: c.Columns,
	}
}

// loadColumns prepends any *_COLUMN override to the default candidates.
func loadColumns() store.Columns {
	cols := store.DefaultColumns()
	cols.Date = prependEnv("DATE_COLUMN", cols.Date)
	cols.Count = prependEnv("COUNT_COLUMN", cols.Count)
	cols.Casual = prependEnv("CASUAL_COLUMN", cols.Casual)
	cols.Registered = prependEnv("REGISTERED_COLUMN", cols.Registered)
	cols.Season = prependEnv("SEASON_COLUMN", cols.Season)
	cols.Weather = prependEnv("WEATHER_COLUMN", cols.Weather)
	return cols
}

func prependEnv(key string, candidates []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return candidates
	}
	return append([]string{v}, candidates...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
