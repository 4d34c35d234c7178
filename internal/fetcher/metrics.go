package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesFetchedTotal tracks successfully decoded pages.
	PagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_fetcher_pages_total",
		Help: "Total number of pages fetched and decoded from the Data API",
	})

	// RateLimitHitsTotal tracks 429 responses.
	RateLimitHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_fetcher_rate_limit_hits_total",
		Help: "Total number of HTTP 429 responses from the Data API",
	})

	// RetryAttemptsTotal tracks retry attempts beyond the first try.
	RetryAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_fetcher_retry_attempts_total",
		Help: "Total number of retry attempts for page fetches",
	})

	// FetchErrorsTotal tracks page fetches that exhausted their retries.
	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_fetcher_errors_total",
		Help: "Total number of page fetches that failed after all retries",
	})

	// RequestDurationSeconds tracks Data API request latency.
	RequestDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polyscan_fetcher_request_duration_seconds",
		Help:    "Duration of individual Data API requests",
		Buckets: prometheus.DefBuckets,
	})
)
