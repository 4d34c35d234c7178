package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyscan/polyscan/internal/enricher"
	"github.com/polyscan/polyscan/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profitCmd = &cobra.Command{
	Use:   "profit <address>",
	Short: "Show the profit summary for one actor",
	Long: `Fetches an actor's positions from the Data API and folds them into
a profit summary: total cash P&L, win/loss split, and biggest single
win and loss.

Example:
  polyscan profit 0x1234abcd...`,
	Args: cobra.ExactArgs(1),
	RunE: runProfit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(profitCmd)
}

func runProfit(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	actorID := types.NormalizeActorID(args[0])
	client := newDataClient(cfg, logger)

	positions, err := client.FetchPositions(cmd.Context(), actorID, cfg.PositionLimit)
	if err != nil {
		return fmt.Errorf("fetch positions: %w", err)
	}

	summary := enricher.Summarize(actorID, positions)

	fmt.Printf("Actor: %s\n\n", summary.ActorID)
	fmt.Printf("Total P&L:       $%.2f\n", summary.TotalCashPnl)
	fmt.Printf("Positions:       %d (%d profitable, %d losing)\n",
		summary.TotalPositions, summary.ProfitablePositions, summary.LosingPositions)
	fmt.Printf("Biggest win:     $%.2f\n", summary.BiggestWin)
	fmt.Printf("Biggest loss:    $%.2f\n", summary.BiggestLoss)
	fmt.Printf("Initial value:   $%.2f\n", summary.TotalInitialValue)
	fmt.Printf("Current value:   $%.2f\n", summary.TotalCurrentValue)

	return nil
}
