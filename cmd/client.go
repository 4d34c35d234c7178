package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/fetcher"
	"github.com/polyscan/polyscan/internal/ratelimit"
	"github.com/polyscan/polyscan/pkg/config"
)

// loadEnvironment loads .env if present, then builds config and logger.
func loadEnvironment() (*config.Config, *zap.Logger, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}

// newDataClient builds a Data API client with its own rate controller.
func newDataClient(cfg *config.Config, logger *zap.Logger) *fetcher.Client {
	return fetcher.New(&fetcher.Config{
		BaseURL: cfg.DataAPIURL,
		Limiter: ratelimit.New(ratelimit.Config{
			BaseDelay:  cfg.BaseDelay,
			MaxDelay:   cfg.MaxDelay,
			Multiplier: cfg.BackoffMultiplier,
			Reduction:  cfg.DelayReduction,
		}),
		Timeout:    cfg.FetchTimeout,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
}
