package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Polymarket Data API
	DataAPIURL   string
	FetchTimeout time.Duration

	// Backoff policy
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	DelayReduction    float64
	MaxRetries        int

	// Trade-feed scan
	WindowDays        int
	PageSize          int
	MaxTradesToScan   int
	FailureBudget     int
	MaxOldRecords     int
	MaxOldBatches     int

	// Enrichment
	ProfitThreshold   float64
	MaxActorsToEnrich int
	PositionLimit     int
	EnrichWorkers     int

	// Serve mode
	ScanInterval   time.Duration
	ProfitCacheTTL time.Duration

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Data API defaults
		DataAPIURL:   getEnvOrDefault("POLYMARKET_DATA_API_URL", "https://data-api.polymarket.com"),
		FetchTimeout: getDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),

		// Backoff defaults
		BaseDelay:         getDurationOrDefault("FETCH_BASE_DELAY", 500*time.Millisecond),
		MaxDelay:          getDurationOrDefault("FETCH_MAX_DELAY", 10*time.Second),
		BackoffMultiplier: getFloat64OrDefault("FETCH_BACKOFF_MULTIPLIER", 2.0),
		DelayReduction:    getFloat64OrDefault("FETCH_DELAY_REDUCTION", 0.9),
		MaxRetries:        getIntOrDefault("FETCH_MAX_RETRIES", 5),

		// Scan defaults
		WindowDays:      getIntOrDefault("SCAN_WINDOW_DAYS", 180),
		PageSize:        getIntOrDefault("SCAN_PAGE_SIZE", 500),
		MaxTradesToScan: getIntOrDefault("SCAN_MAX_TRADES", 10000),
		FailureBudget:   getIntOrDefault("SCAN_FAILURE_BUDGET", 5),
		MaxOldRecords:   getIntOrDefault("SCAN_MAX_OLD_RECORDS", 2500),
		MaxOldBatches:   getIntOrDefault("SCAN_MAX_OLD_BATCHES", 3),

		// Enrichment defaults
		ProfitThreshold:   getFloat64OrDefault("SCAN_PROFIT_THRESHOLD", 3000),
		MaxActorsToEnrich: getIntOrDefault("SCAN_MAX_ACTORS", 0), // 0 = all
		PositionLimit:     getIntOrDefault("ENRICH_POSITION_LIMIT", 500),
		EnrichWorkers:     getIntOrDefault("ENRICH_WORKERS", 4),

		// Serve-mode defaults
		ScanInterval:   getDurationOrDefault("SERVE_SCAN_INTERVAL", 6*time.Hour),
		ProfitCacheTTL: getDurationOrDefault("CACHE_PROFIT_TTL", time.Hour),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "polyscan"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "polyscan123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "polyscan"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.DataAPIURL == "" {
		return fmt.Errorf("POLYMARKET_DATA_API_URL cannot be empty")
	}

	if c.PageSize <= 0 || c.PageSize > 500 {
		return fmt.Errorf("SCAN_PAGE_SIZE must be between 1 and 500, got %d", c.PageSize)
	}

	if c.WindowDays <= 0 {
		return fmt.Errorf("SCAN_WINDOW_DAYS must be positive, got %d", c.WindowDays)
	}

	if c.BackoffMultiplier <= 1.0 {
		return fmt.Errorf("FETCH_BACKOFF_MULTIPLIER must be greater than 1.0, got %f", c.BackoffMultiplier)
	}

	if c.DelayReduction <= 0 || c.DelayReduction >= 1.0 {
		return fmt.Errorf("FETCH_DELAY_REDUCTION must be between 0 and 1.0, got %f", c.DelayReduction)
	}

	if c.BaseDelay <= 0 || c.MaxDelay < c.BaseDelay {
		return fmt.Errorf("FETCH_BASE_DELAY (%v) must be positive and no greater than FETCH_MAX_DELAY (%v)", c.BaseDelay, c.MaxDelay)
	}

	if c.EnrichWorkers <= 0 {
		return fmt.Errorf("ENRICH_WORKERS must be positive, got %d", c.EnrichWorkers)
	}

	if c.StorageMode != "console" && c.StorageMode != "postgres" {
		return fmt.Errorf("STORAGE_MODE must be 'console' or 'postgres', got %q", c.StorageMode)
	}

	return nil
}

// WindowStart returns the cutoff timestamp for the trailing activity window,
// relative to now.
func (c *Config) WindowStart(now time.Time) int64 {
	return now.Add(-time.Duration(c.WindowDays) * 24 * time.Hour).Unix()
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
