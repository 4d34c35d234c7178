package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyscan/polyscan/internal/scanner"
)

//nolint:gochecknoglobals // Cobra boilerplate
var actorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "Scan the trade feed and list the active actors",
	Long: `Walks the trade feed over the activity window and lists the distinct
actors found, busiest first, without enriching them with profit data.

Examples:
  # Top 20 actors of the default window
  polyscan actors

  # Everyone active in the last week
  polyscan actors --window-days 7 --top 0`,
	RunE: runActors,
}

var (
	actorsTop        int
	actorsWindowDays int
	actorsMaxTrades  int
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(actorsCmd)

	actorsCmd.Flags().IntVar(&actorsTop, "top", 20, "Number of actors to list (0 = all)")
	actorsCmd.Flags().IntVar(&actorsWindowDays, "window-days", 0, "Activity window in days (0 = config default)")
	actorsCmd.Flags().IntVar(&actorsMaxTrades, "max-trades", 0, "Max trade records to scan (0 = config default)")
}

func runActors(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if actorsWindowDays > 0 {
		cfg.WindowDays = actorsWindowDays
	}
	if actorsMaxTrades > 0 {
		cfg.MaxTradesToScan = actorsMaxTrades
	}

	scn := scanner.New(newDataClient(cfg, logger), scanner.Config{
		PageSize:      cfg.PageSize,
		MaxRecords:    cfg.MaxTradesToScan,
		FailureBudget: cfg.FailureBudget,
		MaxOldRecords: cfg.MaxOldRecords,
		MaxOldBatches: cfg.MaxOldBatches,
		Logger:        logger,
	})

	result := scn.Scan(cmd.Context(), cfg.WindowStart(time.Now()))

	fmt.Printf("Scanned %d records, found %d actors (stopped: %s)\n\n",
		result.RecordsScanned, len(result.Actors), result.Reason)

	for i, actor := range result.TopActors(actorsTop) {
		fmt.Printf("%4d. %-24s %s  %d trades\n",
			i+1, actor.DisplayName, actor.ActorID, actor.TradeCount)
	}

	return nil
}
