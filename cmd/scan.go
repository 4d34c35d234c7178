package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/polyscan/polyscan/internal/app"
	"github.com/polyscan/polyscan/internal/report"
	"github.com/polyscan/polyscan/internal/storage"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one full scan and print the ranked profit report",
	Long: `Walks the trade feed over the activity window, enriches every
discovered actor with profit data, and prints the ranked report.

Examples:
  # Default scan (table output, $3000 threshold, 180-day window)
  polyscan scan

  # Shorter window and higher bar
  polyscan scan --window-days 30 --threshold 10000

  # Cap the scan and enrich only the busiest actors
  polyscan scan --max-trades 5000 --max-actors 50

  # Export to JSON or CSV
  polyscan scan --format json --output report.json
  polyscan scan --format csv > report.csv`,
	RunE: runScan,
}

var (
	scanMaxTrades  int
	scanMaxActors  int
	scanThreshold  float64
	scanWindowDays int
	scanWorkers    int
	scanFormat     string
	scanOutput     string
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVar(&scanMaxTrades, "max-trades", 0, "Max trade records to scan (0 = config default)")
	scanCmd.Flags().IntVar(&scanMaxActors, "max-actors", 0, "Max actors to enrich, busiest first (0 = all)")
	scanCmd.Flags().Float64Var(&scanThreshold, "threshold", 0, "Profit threshold in USD (0 = config default)")
	scanCmd.Flags().IntVar(&scanWindowDays, "window-days", 0, "Activity window in days (0 = config default)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Enrichment workers (0 = config default)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "table", "Output format: table, json, csv")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Write json/csv output to a file instead of stdout")
}

// silentStore satisfies storage.Storage for export formats that render the
// returned report themselves.
type silentStore struct{}

func (silentStore) StoreReport(context.Context, *report.Report) error { return nil }
func (silentStore) Close() error                                      { return nil }

func runScan(cmd *cobra.Command, args []string) error {
	if err := validateScanFormat(scanFormat); err != nil {
		return err
	}

	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if scanMaxTrades > 0 {
		cfg.MaxTradesToScan = scanMaxTrades
	}
	if scanMaxActors > 0 {
		cfg.MaxActorsToEnrich = scanMaxActors
	}
	if scanThreshold > 0 {
		cfg.ProfitThreshold = scanThreshold
	}
	if scanWindowDays > 0 {
		cfg.WindowDays = scanWindowDays
	}
	if scanWorkers > 0 {
		cfg.EnrichWorkers = scanWorkers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	var store storage.Storage = silentStore{}
	if scanFormat == "table" {
		store = storage.NewConsoleStorage(logger, 0)
	}

	pipeline := app.NewPipeline(cfg, logger, store, nil)

	rpt, err := pipeline.RunOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("run scan: %w", err)
	}

	switch scanFormat {
	case "json":
		return exportJSON(rpt, scanOutput)
	case "csv":
		return exportCSV(rpt, scanOutput)
	}

	return nil
}

func validateScanFormat(format string) error {
	validFormats := map[string]bool{"table": true, "json": true, "csv": true}
	if !validFormats[format] {
		return fmt.Errorf("invalid format: %s (valid: table, json, csv)", format)
	}
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func exportJSON(rpt *report.Report, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if path != "" {
		defer out.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rpt); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

func exportCSV(rpt *report.Report, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if path != "" {
		defer out.Close()
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"rank", "address", "display_name", "profit", "trade_count", "profit_per_trade"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range rpt.Entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.ActorID,
			entry.DisplayName,
			strconv.FormatFloat(entry.Profit, 'f', 2, 64),
			strconv.Itoa(entry.TradeCount),
			strconv.FormatFloat(entry.ProfitPerTrade, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	return nil
}
