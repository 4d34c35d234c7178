package app

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/report"
	"github.com/polyscan/polyscan/internal/storage"
	"github.com/polyscan/polyscan/pkg/cache"
	"github.com/polyscan/polyscan/pkg/config"
	"github.com/polyscan/polyscan/pkg/healthprobe"
	"github.com/polyscan/polyscan/pkg/httpserver"
)

// App is the long-running service orchestrator: it serves the HTTP
// surface and re-runs the scan pipeline on a fixed interval.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	pipeline      *Pipeline
	store         storage.Storage
	profitCache   cache.Cache
	latest        atomic.Pointer[report.Report]
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// LatestReport returns the most recent completed report, if any. It
// implements httpserver.ReportProvider.
func (a *App) LatestReport() (*report.Report, bool) {
	rpt := a.latest.Load()
	if rpt == nil {
		return nil, false
	}
	return rpt, true
}
