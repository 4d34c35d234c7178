package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CurrentDelaySeconds tracks the adaptive inter-request delay.
	CurrentDelaySeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polyscan_ratelimit_current_delay_seconds",
		Help: "Current adaptive inter-request delay",
	})

	// ThrottleEventsTotal tracks upstream 429 responses.
	ThrottleEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_ratelimit_throttle_events_total",
		Help: "Total number of upstream rate-limit signals",
	})

	// TransientFailuresTotal tracks timeouts, connection errors and bad bodies.
	TransientFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyscan_ratelimit_transient_failures_total",
		Help: "Total number of transient request failures",
	})
)
