package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyscan/polyscan/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var activityCmd = &cobra.Command{
	Use:   "activity <address>",
	Short: "Show an actor's recent trade activity",
	Long: `Fetches an actor's trade events within the activity window,
newest first.

Examples:
  polyscan activity 0x1234abcd...
  polyscan activity 0x1234abcd... --window-days 7 --limit 50`,
	Args: cobra.ExactArgs(1),
	RunE: runActivity,
}

var (
	activityWindowDays int
	activityLimit      int
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(activityCmd)

	activityCmd.Flags().IntVar(&activityWindowDays, "window-days", 0, "Activity window in days (0 = config default)")
	activityCmd.Flags().IntVar(&activityLimit, "limit", 100, "Max events to fetch")
}

func runActivity(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if activityWindowDays > 0 {
		cfg.WindowDays = activityWindowDays
	}

	actorID := types.NormalizeActorID(args[0])
	client := newDataClient(cfg, logger)

	now := time.Now()
	events, err := client.FetchActivity(cmd.Context(), actorID, cfg.WindowStart(now), now.Unix(), activityLimit)
	if err != nil {
		return fmt.Errorf("fetch activity: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No trade activity in the window")
		return nil
	}

	fmt.Printf("Actor: %s (%d events)\n\n", actorID, len(events))

	buys, sells := 0, 0
	volume := 0.0
	for _, event := range events {
		ts := time.Unix(event.Timestamp, 0).UTC().Format("2006-01-02 15:04")
		fmt.Printf("%s  %-4s %10.2f @ %.4f  $%10.2f  %s\n",
			ts, event.Side, event.Size.Float64(), event.Price.Float64(),
			event.USDCSize.Float64(), event.Title)

		switch event.Side {
		case "BUY":
			buys++
		case "SELL":
			sells++
		}
		volume += event.USDCSize.Float64()
	}

	fmt.Printf("\n%d buys, %d sells, $%.2f USDC volume\n", buys, sells, volume)

	return nil
}
