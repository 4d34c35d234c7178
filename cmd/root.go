package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "polyscan",
	Short: "Polymarket profitable-actor scanner",
	Long: `Polyscan walks the Polymarket trade feed over a trailing activity
window, deduplicates the wallets behind the trades, enriches each actor
with its position-level profit data, and ranks everyone who clears a
profit threshold.

The scanner paces itself against the public Data API with adaptive
backoff, so long scans survive rate limiting without operator help.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
