package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/pkg/healthprobe"
)

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("application-starting",
		zap.String("data-api", a.cfg.DataAPIURL),
		zap.Duration("scan-interval", a.cfg.ScanInterval),
		zap.String("log-level", a.cfg.LogLevel))

	a.wg.Add(1)
	go a.runHTTPServer()

	// Give HTTP server a moment to start
	time.Sleep(100 * time.Millisecond)

	a.wg.Add(1)
	go a.runScanLoop()

	// Mark as ready
	a.healthChecker.SetReady(true)

	a.logger.Info("application-ready",
		zap.String("http-addr", ":"+a.cfg.HTTPPort))

	// Wait for shutdown signal
	return a.waitForShutdown()
}

func (a *App) runHTTPServer() {
	defer a.wg.Done()
	err := a.httpServer.Start()
	if err != nil {
		a.logger.Error("http-server-error", zap.Error(err))
	}
}

// runScanLoop runs one scan immediately and then re-runs on the configured
// interval until the application context is cancelled.
func (a *App) runScanLoop() {
	defer a.wg.Done()

	a.runScan()

	ticker := time.NewTicker(a.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.runScan()
		}
	}
}

func (a *App) runScan() {
	rpt, err := a.pipeline.RunOnce(a.ctx)
	if err != nil {
		if a.ctx.Err() == nil {
			a.logger.Error("scan-cycle-failed", zap.Error(err))
		}
		return
	}

	a.latest.Store(rpt)
	a.healthChecker.SetLastScan(healthprobe.ScanStatus{
		RunID:       rpt.RunID,
		CompletedAt: rpt.GeneratedAt,
		StopReason:  rpt.StopReason,
		Qualifying:  rpt.Stats.Qualifying,
	})
}

func (a *App) waitForShutdown() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
		a.logger.Info("context-cancelled")
	}

	return a.Shutdown()
}
