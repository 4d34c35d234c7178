package fetcher

import "testing"

// TestMetrics_Registration tests all metrics are initialized
func TestMetrics_Registration(t *testing.T) {
	if PagesFetchedTotal == nil {
		t.Error("PagesFetchedTotal not registered")
	}

	if RateLimitHitsTotal == nil {
		t.Error("RateLimitHitsTotal not registered")
	}

	if RetryAttemptsTotal == nil {
		t.Error("RetryAttemptsTotal not registered")
	}

	if FetchErrorsTotal == nil {
		t.Error("FetchErrorsTotal not registered")
	}

	if RequestDurationSeconds == nil {
		t.Error("RequestDurationSeconds not registered")
	}
}

// TestMetrics_Update tests collectors accept values
func TestMetrics_Update(t *testing.T) {
	PagesFetchedTotal.Inc()
	RateLimitHitsTotal.Inc()
	RetryAttemptsTotal.Inc()
	FetchErrorsTotal.Inc()
	RequestDurationSeconds.Observe(0.25)
}
