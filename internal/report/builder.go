package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/scanner"
	"github.com/polyscan/polyscan/pkg/types"
)

// Builder assembles ranked reports from scan results and profit summaries.
type Builder struct {
	threshold float64
	logger    *zap.Logger
}

// NewBuilder creates a report builder with the given qualification
// threshold. Actors qualify when profit exceeds the threshold strictly.
func NewBuilder(threshold float64, logger *zap.Logger) *Builder {
	return &Builder{
		threshold: threshold,
		logger:    logger,
	}
}

// Build ranks every enriched actor above the profit threshold and
// aggregates distribution stats over the full scanned population. It is a
// pure fold over its inputs apart from the run id and timestamp.
func (b *Builder) Build(scan *scanner.Result, profits map[string]*types.ProfitSummary) *Report {
	rpt := &Report{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		WindowStart:    scan.WindowStart,
		Threshold:      b.threshold,
		StopReason:     string(scan.Reason),
		ActorsScanned:  len(scan.Actors),
		RecordsScanned: scan.RecordsScanned,
	}

	totalTrades := 0
	for _, activity := range scan.Actors {
		switch {
		case activity.TradeCount >= 10:
			rpt.Distribution.Heavy++
		case activity.TradeCount >= 3:
			rpt.Distribution.Moderate++
		default:
			rpt.Distribution.Light++
		}
		totalTrades += activity.TradeCount
		if activity.TradeCount > rpt.Distribution.MaxTrades {
			rpt.Distribution.MaxTrades = activity.TradeCount
		}
	}
	if len(scan.Actors) > 0 {
		rpt.Distribution.AvgTrades = float64(totalTrades) / float64(len(scan.Actors))
	}

	for _, summary := range profits {
		activity := scan.Actors[summary.ActorID]
		if activity == nil {
			// Profit data for an actor the scan never saw; nothing to
			// rank it against, skip.
			continue
		}

		if summary.EnrichmentFailed {
			// Failed actors stay visible as zero-profit entries with the
			// marker set; the threshold does not apply to them because
			// their real profit is unknown.
			rpt.FailedEnrichments++
			rpt.Entries = append(rpt.Entries, Entry{
				ActorID:          summary.ActorID,
				DisplayName:      activity.DisplayName,
				TradeCount:       activity.TradeCount,
				EnrichmentFailed: true,
			})
			continue
		}
		rpt.ActorsEnriched++

		if summary.TotalCashPnl <= b.threshold {
			continue
		}

		rpt.Entries = append(rpt.Entries, Entry{
			ActorID:             summary.ActorID,
			DisplayName:         activity.DisplayName,
			Profit:              summary.TotalCashPnl,
			TradeCount:          activity.TradeCount,
			ProfitPerTrade:      profitPerTrade(summary.TotalCashPnl, activity.TradeCount),
			TotalPositions:      summary.TotalPositions,
			ProfitablePositions: summary.ProfitablePositions,
			LosingPositions:     summary.LosingPositions,
			BiggestWin:          summary.BiggestWin,
			BiggestLoss:         summary.BiggestLoss,
		})
	}

	sort.Slice(rpt.Entries, func(i, j int) bool {
		if rpt.Entries[i].Profit != rpt.Entries[j].Profit {
			return rpt.Entries[i].Profit > rpt.Entries[j].Profit
		}
		if rpt.Entries[i].TradeCount != rpt.Entries[j].TradeCount {
			return rpt.Entries[i].TradeCount > rpt.Entries[j].TradeCount
		}
		return rpt.Entries[i].ActorID < rpt.Entries[j].ActorID
	})

	// Stats cover only the qualifying entries; failed-enrichment entries
	// carry an unknown profit, not a zero one.
	for i := range rpt.Entries {
		rpt.Entries[i].Rank = i + 1
		if rpt.Entries[i].EnrichmentFailed {
			continue
		}

		profit := rpt.Entries[i].Profit
		rpt.Stats.Qualifying++
		rpt.Stats.TotalProfit += profit
		if rpt.Stats.Qualifying == 1 {
			rpt.Stats.MaxProfit = profit
			rpt.Stats.MinProfit = profit
			continue
		}
		if profit > rpt.Stats.MaxProfit {
			rpt.Stats.MaxProfit = profit
		}
		if profit < rpt.Stats.MinProfit {
			rpt.Stats.MinProfit = profit
		}
	}

	if rpt.Stats.Qualifying > 0 {
		rpt.Stats.AverageProfit = rpt.Stats.TotalProfit / float64(rpt.Stats.Qualifying)
	}

	ReportsBuiltTotal.Inc()
	QualifyingActors.Set(float64(rpt.Stats.Qualifying))

	b.logger.Info("report-built",
		zap.String("run-id", rpt.RunID),
		zap.String("stop-reason", rpt.StopReason),
		zap.Int("actors-scanned", rpt.ActorsScanned),
		zap.Int("qualifying", rpt.Stats.Qualifying),
		zap.Int("failed-enrichments", rpt.FailedEnrichments))

	return rpt
}

func profitPerTrade(profit float64, trades int) float64 {
	if trades == 0 {
		return 0
	}
	return profit / float64(trades)
}
