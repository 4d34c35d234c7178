package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyscan/polyscan/internal/app"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scanner as a long-lived service",
	Long: `Starts polyscan as a service: scans immediately, then re-scans on
the configured interval (SERVE_SCAN_INTERVAL, default 6h).

The HTTP surface exposes:
  /metrics     Prometheus metrics
  /health      liveness, including the last completed scan
  /ready       readiness
  /api/report  the latest ranked report as JSON`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
