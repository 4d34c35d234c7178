package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/enricher"
	"github.com/polyscan/polyscan/internal/fetcher"
	"github.com/polyscan/polyscan/internal/ratelimit"
	"github.com/polyscan/polyscan/internal/report"
	"github.com/polyscan/polyscan/internal/scanner"
	"github.com/polyscan/polyscan/internal/storage"
	"github.com/polyscan/polyscan/pkg/cache"
	"github.com/polyscan/polyscan/pkg/config"
)

// Pipeline runs the full scan cycle: walk the trade feed, enrich the
// discovered actors with profit data, rank them, and persist the report.
type Pipeline struct {
	cfg      *config.Config
	logger   *zap.Logger
	scanner  *scanner.Scanner
	enricher *enricher.Enricher
	builder  *report.Builder
	store    storage.Storage
}

// NewPipeline wires a pipeline from configuration. The scanner and each
// enrichment worker get their own API client, so every request stream owns
// its rate controller exclusively.
func NewPipeline(cfg *config.Config, logger *zap.Logger, store storage.Storage, profitCache cache.Cache) *Pipeline {
	scn := scanner.New(newDataClient(cfg, logger), scanner.Config{
		PageSize:      cfg.PageSize,
		MaxRecords:    cfg.MaxTradesToScan,
		FailureBudget: cfg.FailureBudget,
		MaxOldRecords: cfg.MaxOldRecords,
		MaxOldBatches: cfg.MaxOldBatches,
		Logger:        logger,
	})

	enr := enricher.New(func() enricher.PositionFetcher {
		return newDataClient(cfg, logger)
	}, enricher.Config{
		Workers:       cfg.EnrichWorkers,
		PositionLimit: cfg.PositionLimit,
		CacheTTL:      cfg.ProfitCacheTTL,
		Cache:         profitCache,
		Logger:        logger,
	})

	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		scanner:  scn,
		enricher: enr,
		builder:  report.NewBuilder(cfg.ProfitThreshold, logger),
		store:    store,
	}
}

// RunOnce executes one full scan-enrich-report cycle and persists the
// resulting report.
func (p *Pipeline) RunOnce(ctx context.Context) (*report.Report, error) {
	windowStart := p.cfg.WindowStart(time.Now())

	scan := p.scanner.Scan(ctx, windowStart)
	if scan.Reason == scanner.StopCancelled {
		return nil, ctx.Err()
	}

	actors := scan.TopActors(p.cfg.MaxActorsToEnrich)
	profits := p.enricher.Enrich(ctx, actors)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rpt := p.builder.Build(scan, profits)

	if err := p.store.StoreReport(ctx, rpt); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	return rpt, nil
}

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
