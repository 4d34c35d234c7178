package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsBuiltTotal counts completed report builds.
	ReportsBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_report_builds_total",
		Help: "Total number of reports built",
	})

	// QualifyingActors is the qualifying entry count of the latest report.
	QualifyingActors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polyscan_report_qualifying_actors",
		Help: "Number of actors above the profit threshold in the most recent report",
	})
)
