package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/storage"
	"github.com/polyscan/polyscan/pkg/cache"
	"github.com/polyscan/polyscan/pkg/config"
	"github.com/polyscan/polyscan/pkg/healthprobe"
	"github.com/polyscan/polyscan/pkg/httpserver"
)

// consoleReportRows caps the ranked table printed by console storage.
const consoleReportRows = 25

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := setupHealthChecker()

	profitCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	store, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	app := &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		pipeline:      NewPipeline(cfg, logger, store, profitCache),
		store:         store,
		profitCache:   profitCache,
		ctx:           ctx,
		cancel:        cancel,
	}

	// HTTP server serves the latest report straight from the app
	app.httpServer = setupHTTPServer(cfg, logger, healthChecker, app)

	return app, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	provider httpserver.ReportProvider,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:           cfg.HTTPPort,
		Logger:         logger,
		HealthChecker:  healthChecker,
		ReportProvider: provider,
	})
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		MaxActors: 10000, // a full scan rarely discovers more actors
		Logger:    logger,
	})
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger, consoleReportRows), nil
}
