package storage

import (
	"context"

	"github.com/polyscan/polyscan/internal/report"
)

// Storage is the interface for persisting scan reports.
type Storage interface {
	// StoreReport stores a completed scan report.
	StoreReport(ctx context.Context, rpt *report.Report) error

	// Close closes the storage connection.
	Close() error
}
