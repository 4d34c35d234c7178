package scanner

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/pkg/types"
)

// StopReason is the terminal state of a trade-feed scan. Termination reason
// is data returned to the caller, not an implicit loop fallthrough.
type StopReason string

const (
	// StopWindowExhausted: the consecutive out-of-window record count
	// crossed its threshold. The feed is newest-first, so everything
	// beyond this point is assumed older than the window.
	StopWindowExhausted StopReason = "WINDOW_EXHAUSTED"

	// StopConsecutiveOldBatches: several whole pages in a row contained
	// only out-of-window records.
	StopConsecutiveOldBatches StopReason = "CONSECUTIVE_OLD_BATCHES"

	// StopSourceExhausted: the upstream returned an empty page.
	StopSourceExhausted StopReason = "SOURCE_EXHAUSTED"

	// StopFailureBudget: too many pages failed to fetch after retries.
	StopFailureBudget StopReason = "FAILURE_BUDGET"

	// StopMaxRecords: the operator-supplied record cap was reached.
	StopMaxRecords StopReason = "MAX_RECORDS"

	// StopCancelled: the scan context was cancelled between pages.
	StopCancelled StopReason = "CANCELLED"
)

// TradeFetcher fetches one page of the global trade feed.
type TradeFetcher interface {
	FetchTrades(ctx context.Context, limit, offset int, takerOnly bool) ([]types.TradeRecord, error)
}

// Scanner walks the reverse-chronological trade feed and accumulates the
// set of distinct actors active within the window, with per-actor trade
// counts. It owns the actor map exclusively while a scan runs.
type Scanner struct {
	fetcher TradeFetcher
	cfg     Config
	logger  *zap.Logger
}

// Config holds scanner configuration.
type Config struct {
	PageSize      int  // records per page, clamped upstream to 500
	MaxRecords    int  // stop after scanning this many records; 0 = unbounded
	FailureBudget int  // skipped pages tolerated before giving up
	MaxOldRecords int  // consecutive out-of-window records before stopping
	MaxOldBatches int  // consecutive fully-old pages before stopping
	TakerOnly     bool // narrow the feed to taker fills
	Logger        *zap.Logger
}

// Result carries the accumulated actors plus scan diagnostics. A scan
// always returns its partial results, whatever the stop reason.
type Result struct {
	Actors      map[string]*types.ActorActivity
	Reason      StopReason
	WindowStart int64

	RecordsScanned int
	InWindow       int
	OutOfWindow    int
	PagesFetched   int
	PagesFailed    int
}

// New creates a scanner over the given trade fetcher.
func New(fetcher TradeFetcher, cfg Config) *Scanner {
	return &Scanner{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  cfg.Logger,
	}
}

// Scan walks the feed from offset 0 until a terminal state is reached.
// windowStart is the unix-seconds cutoff: records at or after it are in
// the window.
func (s *Scanner) Scan(ctx context.Context, windowStart int64) *Result {
	start := time.Now()
	defer func() {
		ScanDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	s.logger.Info("scan-starting",
		zap.Int64("window-start", windowStart),
		zap.Int("page-size", s.cfg.PageSize),
		zap.Int("max-records", s.cfg.MaxRecords))

	result := &Result{
		Actors:      make(map[string]*types.ActorActivity),
		WindowStart: windowStart,
	}

	var (
		offset                int
		consecutiveOldRecords int
		consecutiveOldBatches int
	)

	for {
		if ctx.Err() != nil {
			return s.finish(result, StopCancelled)
		}

		page, err := s.fetcher.FetchTrades(ctx, s.cfg.PageSize, offset, s.cfg.TakerOnly)
		if err != nil {
			if ctx.Err() != nil {
				return s.finish(result, StopCancelled)
			}

			// Retries already ran inside the fetcher; skip the page and
			// spend one unit of the failure budget.
			result.PagesFailed++
			PagesSkippedTotal.Inc()
			s.logger.Warn("page-skipped",
				zap.Int("offset", offset),
				zap.Int("failed-pages", result.PagesFailed),
				zap.Error(err))

			if result.PagesFailed >= s.cfg.FailureBudget {
				return s.finish(result, StopFailureBudget)
			}

			offset += s.cfg.PageSize
			continue
		}

		result.PagesFetched++

		if len(page) == 0 {
			return s.finish(result, StopSourceExhausted)
		}

		inWindowInPage, oldInPage := s.processPage(result, page, windowStart)

		if inWindowInPage > 0 {
			consecutiveOldRecords = 0
			consecutiveOldBatches = 0
		} else {
			consecutiveOldRecords += oldInPage
			consecutiveOldBatches++
		}

		s.logger.Debug("page-processed",
			zap.Int("offset", offset),
			zap.Int("in-window", inWindowInPage),
			zap.Int("out-of-window", oldInPage),
			zap.Int("actors", len(result.Actors)))

		if consecutiveOldRecords >= s.cfg.MaxOldRecords {
			return s.finish(result, StopWindowExhausted)
		}

		if consecutiveOldBatches >= s.cfg.MaxOldBatches {
			return s.finish(result, StopConsecutiveOldBatches)
		}

		if s.cfg.MaxRecords > 0 && result.RecordsScanned >= s.cfg.MaxRecords {
			return s.finish(result, StopMaxRecords)
		}

		offset += s.cfg.PageSize
	}
}

// processPage partitions one page by the window cutoff and upserts
// in-window actors. Returns the in-window and out-of-window counts.
func (s *Scanner) processPage(result *Result, page []types.TradeRecord, windowStart int64) (inWindow, old int) {
	for i := range page {
		trade := &page[i]
		result.RecordsScanned++
		RecordsScannedTotal.Inc()

		if trade.Timestamp < windowStart {
			old++
			result.OutOfWindow++
			continue
		}

		inWindow++
		result.InWindow++

		if trade.ProxyWallet == "" {
			continue
		}

		actorID := types.NormalizeActorID(trade.ProxyWallet)

		actor, seen := result.Actors[actorID]
		if !seen {
			result.Actors[actorID] = &types.ActorActivity{
				ActorID:     actorID,
				DisplayName: types.DisplayNameFor(trade.Name, trade.Pseudonym),
				TradeCount:  1,
			}
			continue
		}

		actor.TradeCount++
	}

	return inWindow, old
}

func (s *Scanner) finish(result *Result, reason StopReason) *Result {
	result.Reason = reason
	ActorsDiscovered.Set(float64(len(result.Actors)))

	s.logger.Info("scan-complete",
		zap.String("reason", string(reason)),
		zap.Int("records-scanned", result.RecordsScanned),
		zap.Int("in-window", result.InWindow),
		zap.Int("actors", len(result.Actors)),
		zap.Int("pages-fetched", result.PagesFetched),
		zap.Int("pages-failed", result.PagesFailed))

	return result
}

// TopActors returns the actors ordered by trade count descending (ties by
// actor id for determinism), truncated to n when n > 0.
func (r *Result) TopActors(n int) []*types.ActorActivity {
	actors := make([]*types.ActorActivity, 0, len(r.Actors))
	for _, actor := range r.Actors {
		actors = append(actors, actor)
	}

	// Most active first; ties resolved by id so ordering is stable
	// across runs.
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].TradeCount != actors[j].TradeCount {
			return actors[i].TradeCount > actors[j].TradeCount
		}
		return actors[i].ActorID < actors[j].ActorID
	})

	if n > 0 && len(actors) > n {
		actors = actors[:n]
	}

	return actors
}
