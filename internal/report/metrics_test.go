package report

import (
	"testing"
)

// TestMetrics_Registration tests all metrics are initialized
func TestMetrics_Registration(t *testing.T) {
	if ReportsBuiltTotal == nil {
		t.Error("ReportsBuiltTotal not registered")
	}

	if QualifyingActors == nil {
		t.Error("QualifyingActors not registered")
	}
}

// TestMetrics_Update tests collectors accept updates
func TestMetrics_Update(t *testing.T) {
	ReportsBuiltTotal.Inc()
	QualifyingActors.Set(7)
}
