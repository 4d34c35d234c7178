package enricher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActorsEnrichedTotal counts actors whose positions were fetched and
	// summarized successfully.
	ActorsEnrichedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_enricher_actors_enriched_total",
		Help: "Total number of actors successfully enriched with profit data",
	})

	// EnrichmentFailuresTotal counts actors whose position fetch failed
	// after retries.
	EnrichmentFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_enricher_failures_total",
		Help: "Total number of actors whose enrichment failed",
	})

	// PositionsFetchedTotal counts position records pulled from upstream.
	PositionsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_enricher_positions_fetched_total",
		Help: "Total number of position records fetched",
	})

	// EnrichDurationSeconds tracks wall-clock duration of enrichment batches.
	EnrichDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polyscan_enricher_batch_duration_seconds",
		Help:    "Duration of enrichment batches in seconds",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})
)
