package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/report"
)

const consoleRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger  *zap.Logger
	maxRows int
}

// NewConsoleStorage creates a new console storage. maxRows caps the ranked
// table; 0 prints every entry.
func NewConsoleStorage(logger *zap.Logger, maxRows int) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger:  logger,
		maxRows: maxRows,
	}
}

// StoreReport pretty-prints a scan report to console.
func (c *ConsoleStorage) StoreReport(_ context.Context, rpt *report.Report) error {
	fmt.Println("\n" + consoleRule)
	fmt.Printf("🏆 PROFITABLE ACTOR REPORT\n")
	fmt.Println(consoleRule)
	fmt.Printf("Run:        %s\n", truncate(rpt.RunID, 9))
	fmt.Printf("Generated:  %s\n", rpt.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Stopped:    %s\n", rpt.StopReason)
	fmt.Printf("Scanned:    %d records, %d actors\n", rpt.RecordsScanned, rpt.ActorsScanned)
	fmt.Printf("Enriched:   %d ok, %d failed\n", rpt.ActorsEnriched, rpt.FailedEnrichments)
	fmt.Println(consoleRule)
	fmt.Printf("📊 SUMMARY (threshold $%.2f)\n", rpt.Threshold)
	fmt.Printf("  Qualifying:  %d actors\n", rpt.Stats.Qualifying)
	fmt.Printf("  Total P&L:   $%.2f\n", rpt.Stats.TotalProfit)
	fmt.Printf("  Average:     $%.2f\n", rpt.Stats.AverageProfit)
	fmt.Printf("  Range:       $%.2f .. $%.2f\n", rpt.Stats.MinProfit, rpt.Stats.MaxProfit)
	fmt.Println(consoleRule)

	rows := len(rpt.Entries)
	if c.maxRows > 0 && rows > c.maxRows {
		rows = c.maxRows
	}

	if rows > 0 {
		fmt.Printf("💰 TOP ACTORS\n")
		for _, entry := range rpt.Entries[:rows] {
			if entry.EnrichmentFailed {
				fmt.Printf("%4d. %-24s %-14s %13s  %5d trades\n",
					entry.Rank,
					truncate(entry.DisplayName, 24),
					shortAddress(entry.ActorID),
					"(enrich fail)",
					entry.TradeCount)
				continue
			}
			fmt.Printf("%4d. %-24s %-14s $%12.2f  %5d trades  $%10.2f/trade\n",
				entry.Rank,
				truncate(entry.DisplayName, 24),
				shortAddress(entry.ActorID),
				entry.Profit,
				entry.TradeCount,
				entry.ProfitPerTrade)
		}
		fmt.Println(consoleRule)
	}

	fmt.Printf("📈 ACTIVITY DISTRIBUTION\n")
	fmt.Printf("  10+ trades:  %d actors\n", rpt.Distribution.Heavy)
	fmt.Printf("  3-9 trades:  %d actors\n", rpt.Distribution.Moderate)
	fmt.Printf("  <3 trades:   %d actors\n", rpt.Distribution.Light)
	fmt.Printf("  avg %.1f trades/actor, busiest %d\n",
		rpt.Distribution.AvgTrades, rpt.Distribution.MaxTrades)
	fmt.Println(consoleRule)

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func shortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}
