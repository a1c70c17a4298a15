package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/imrishuroy/go-qr-orderform/internal/logger"
	"github.com/imrishuroy/go-qr-orderform/internal/qr"
)

// Config holds everything cmd/api reads from the environment.
type Config struct {
	Port             string
	CatalogFile      string
	CatalogTable     string
	StaticDir        string
	StrictValidation bool
	EncodeTimeout    time.Duration
	QRSize           int
	OrdersQueueURL   string
	MetricsNamespace string
	LogLevel         slog.Level
}

// Load reads the configuration from the environment. Malformed values are errors.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "3000"),
		CatalogFile:      getEnv("CATALOG_FILE", "price_db.json"),
		CatalogTable:     os.Getenv("CATALOG_TABLE"),
		StaticDir:        getEnv("STATIC_DIR", "public"),
		OrdersQueueURL:   os.Getenv("ORDERS_QUEUE_URL"),
		MetricsNamespace: os.Getenv("METRICS_NAMESPACE"),
	}

	var err error
	if cfg.StrictValidation, err = strconv.ParseBool(getEnv("STRICT_VALIDATION", "false")); err != nil {
		return cfg, fmt.Errorf("STRICT_VALIDATION: %w", err)
	}
	if cfg.EncodeTimeout, err = time.ParseDuration(getEnv("ENCODE_TIMEOUT", qr.DefaultTimeout.String())); err != nil {
		return cfg, fmt.Errorf("ENCODE_TIMEOUT: %w", err)
	}
	if cfg.EncodeTimeout <= 0 {
		return cfg, fmt.Errorf("ENCODE_TIMEOUT must be positive, got %s", cfg.EncodeTimeout)
	}
	if cfg.QRSize, err = strconv.Atoi(getEnv("QR_SIZE", strconv.Itoa(qr.DefaultSize))); err != nil {
		return cfg, fmt.Errorf("QR_SIZE: %w", err)
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return cfg, fmt.Errorf("PORT: invalid port %q", cfg.Port)
	}
	if cfg.LogLevel, err = logger.ParseLevel(os.Getenv("LOG_LEVEL")); err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Addr is the local listen address.
func (c Config) Addr() string { return ":" + c.Port }

// NeedsAWS reports whether any AWS-backed feature is enabled.
func (c Config) NeedsAWS() bool {
	return c.CatalogTable != "" || c.OrdersQueueURL != "" || c.MetricsNamespace != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
