package enricher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/pkg/cache"
	"github.com/polyscan/polyscan/pkg/types"
)

// PositionFetcher fetches an actor's open positions from the upstream.
type PositionFetcher interface {
	FetchPositions(ctx context.Context, user string, limit int) ([]types.PositionRecord, error)
}

// FetcherFactory builds one fetcher per worker. Each fetcher owns its own
// rate controller, so requests from a single worker are serialized and
// paced independently.
type FetcherFactory func() PositionFetcher

// Config holds enricher configuration.
type Config struct {
	Workers       int           // concurrent enrichment workers
	PositionLimit int           // max positions fetched per actor
	CacheTTL      time.Duration // how long cached summaries stay fresh
	Cache         cache.Cache   // optional, nil disables caching
	Logger        *zap.Logger
}

// Enricher turns a set of scanned actors into per-actor profit summaries
// by fetching each actor's position list and folding it.
type Enricher struct {
	factory FetcherFactory
	cfg     Config
	logger  *zap.Logger
}

// New creates an enricher backed by the given fetcher factory.
func New(factory FetcherFactory, cfg Config) *Enricher {
	return &Enricher{
		factory: factory,
		cfg:     cfg,
		logger:  cfg.Logger,
	}
}

// Enrich fetches and summarizes positions for every actor. A fetch failure
// isolates to that actor: its summary carries EnrichmentFailed and zero
// profit while the rest of the batch proceeds. Cancellation stops feeding
// new actors to the pool; actors already in flight finish or fail.
func (e *Enricher) Enrich(ctx context.Context, actors []*types.ActorActivity) map[string]*types.ProfitSummary {
	start := time.Now()
	defer func() {
		EnrichDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	e.logger.Info("enrichment-starting",
		zap.Int("actors", len(actors)),
		zap.Int("workers", workers))

	results := make(map[string]*types.ProfitSummary, len(actors))
	var mu sync.Mutex

	jobs := make(chan *types.ActorActivity)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetcher := e.factory()
			for actor := range jobs {
				summary := e.enrichOne(ctx, fetcher, actor)
				mu.Lock()
				results[actor.ActorID] = summary
				mu.Unlock()
			}
		}()
	}

feed:
	for _, actor := range actors {
		select {
		case jobs <- actor:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	e.logger.Info("enrichment-complete",
		zap.Int("enriched", len(results)),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

func (e *Enricher) enrichOne(ctx context.Context, fetcher PositionFetcher, actor *types.ActorActivity) *types.ProfitSummary {
	if e.cfg.Cache != nil {
		if summary, found := e.cfg.Cache.Get(actor.ActorID); found {
			return summary
		}
	}

	positions, err := fetcher.FetchPositions(ctx, actor.ActorID, e.cfg.PositionLimit)
	if err != nil {
		EnrichmentFailuresTotal.Inc()
		e.logger.Warn("actor-enrichment-failed",
			zap.String("actor", actor.ActorID),
			zap.Error(err))
		return &types.ProfitSummary{ActorID: actor.ActorID, EnrichmentFailed: true}
	}

	ActorsEnrichedTotal.Inc()
	PositionsFetchedTotal.Add(float64(len(positions)))

	summary := Summarize(actor.ActorID, positions)

	if e.cfg.Cache != nil {
		e.cfg.Cache.Set(actor.ActorID, summary, e.cfg.CacheTTL)
	}

	return summary
}

// Summarize folds an actor's position list into a profit summary. Missing
// or malformed numeric fields read as zero, so a partially-populated
// position still contributes what it has. An empty list yields the zero
// summary rather than an error.
func Summarize(actorID string, positions []types.PositionRecord) *types.ProfitSummary {
	summary := &types.ProfitSummary{ActorID: actorID}

	for i := range positions {
		pos := &positions[i]
		cash := pos.CashPnl.Float64()

		summary.TotalPositions++
		summary.TotalCashPnl += cash
		summary.TotalPercentPnl += pos.PercentPnl.Float64()
		summary.TotalInitialValue += pos.InitialValue.Float64()
		summary.TotalCurrentValue += pos.CurrentValue.Float64()

		switch {
		case cash > 0:
			summary.ProfitablePositions++
			if cash > summary.BiggestWin {
				summary.BiggestWin = cash
			}
		case cash < 0:
			summary.LosingPositions++
			if cash < summary.BiggestLoss {
				summary.BiggestLoss = cash
			}
		}
	}

	return summary
}
