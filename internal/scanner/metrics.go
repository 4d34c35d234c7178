package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsScannedTotal counts trade records processed across all scans.
	RecordsScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_scanner_records_scanned_total",
		Help: "Total number of trade records processed by the scanner",
	})

	// PagesSkippedTotal counts pages abandoned after the fetcher
	// exhausted its retries.
	PagesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_scanner_pages_skipped_total",
		Help: "Total number of trade-feed pages skipped due to fetch failures",
	})

	// ActorsDiscovered is the distinct actor count of the latest scan.
	ActorsDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polyscan_scanner_actors_discovered",
		Help: "Number of distinct actors found by the most recent scan",
	})

	// ScanDurationSeconds tracks wall-clock scan duration.
	ScanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polyscan_scanner_scan_duration_seconds",
		Help:    "Duration of full trade-feed scans in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)
