package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fundboard/internal/adapters/logger"
)

// StoreBackend selects which adapter backs the two persisted stores.
type StoreBackend string

const (
	BackendFile   StoreBackend = "file"
	BackendSQLite StoreBackend = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// Bitget API
	APIKey     string
	SecretKey  string
	Passphrase string

	// Exchange scope
	ProductType string // e.g. "USDT-FUTURES"
	MarginCoin  string // e.g. "USDT"
	BillsLimit  int    // recent ledger window fetched each cycle

	// Persisted stores
	StoreBackend  StoreBackend
	HistoryPath   string // CSV equity history (file backend)
	FundStatePath string // JSON fund state (file backend)
	DBPath        string // sqlite backend

	// Snapshot timing
	SnapshotTZOffsetHours int // reference timezone as fixed UTC offset
	SnapshotCutoffHour    int // earliest local hour for the daily snapshot

	// Poll loop
	RefreshInterval time.Duration

	// Logging
	LogLevel  logger.LogLevel
	LogFormat string // "text" (std logger) or "json" (zap)
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string

	cfg.APIKey = getEnv("BITGET_API_KEY", "")
	cfg.SecretKey = getEnv("BITGET_API_SECRET", "")
	cfg.Passphrase = getEnv("BITGET_API_PASSPHRASE", "")
	if cfg.APIKey == "" {
		errs = append(errs, "BITGET_API_KEY must be set")
	}
	if cfg.SecretKey == "" {
		errs = append(errs, "BITGET_API_SECRET must be set")
	}
	if cfg.Passphrase == "" {
		errs = append(errs, "BITGET_API_PASSPHRASE must be set")
	}

	cfg.ProductType = getEnv("PRODUCT_TYPE", "USDT-FUTURES")
	cfg.MarginCoin = getEnv("MARGIN_COIN", "USDT")

	cfg.BillsLimit = getEnvAsInt("BILLS_LIMIT", 100)
	if cfg.BillsLimit <= 0 {
		errs = append(errs, "BILLS_LIMIT must be positive")
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", string(BackendFile)))
	switch StoreBackend(backend) {
	case BackendFile, BackendSQLite:
		cfg.StoreBackend = StoreBackend(backend)
	default:
		errs = append(errs, fmt.Sprintf("STORE_BACKEND must be 'file' or 'sqlite', got '%s'", backend))
	}

	cfg.HistoryPath = getEnv("HISTORY_PATH", "./data/equity_history.csv")
	cfg.FundStatePath = getEnv("FUND_STATE_PATH", "./data/fund_state.json")
	cfg.DBPath = getEnv("DB_PATH", "./data/fundboard.db")

	cfg.SnapshotTZOffsetHours = getEnvAsInt("SNAPSHOT_TZ_OFFSET_HOURS", 9)
	if cfg.SnapshotTZOffsetHours < -12 || cfg.SnapshotTZOffsetHours > 14 {
		errs = append(errs, "SNAPSHOT_TZ_OFFSET_HOURS must be a valid UTC offset")
	}

	cfg.SnapshotCutoffHour = getEnvAsInt("SNAPSHOT_CUTOFF_HOUR", 9)
	if cfg.SnapshotCutoffHour < 0 || cfg.SnapshotCutoffHour > 23 {
		errs = append(errs, "SNAPSHOT_CUTOFF_HOUR must be between 0 and 23")
	}

	refreshSeconds := getEnvAsInt("REFRESH_INTERVAL_SECONDS", 5)
	if refreshSeconds <= 0 {
		errs = append(errs, "REFRESH_INTERVAL_SECONDS must be positive")
	}
	cfg.RefreshInterval = time.Duration(refreshSeconds) * time.Second

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be 'text' or 'json', got '%s'", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
