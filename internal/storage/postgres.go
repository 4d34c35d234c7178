package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/report"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreReport stores the report header and its ranked entries in one
// transaction, so a partially written report never becomes visible.
func (p *PostgresStorage) StoreReport(ctx context.Context, rpt *report.Report) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	headerQuery := `
		INSERT INTO scan_reports (
			run_id, generated_at, window_start, threshold, stop_reason,
			actors_scanned, actors_enriched, failed_enrichments, records_scanned,
			qualifying, total_profit, average_profit, max_profit, min_profit,
			heavy_actors, moderate_actors, light_actors
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	_, err = tx.ExecContext(ctx, headerQuery,
		rpt.RunID,
		rpt.GeneratedAt,
		rpt.WindowStart,
		rpt.Threshold,
		rpt.StopReason,
		rpt.ActorsScanned,
		rpt.ActorsEnriched,
		rpt.FailedEnrichments,
		rpt.RecordsScanned,
		rpt.Stats.Qualifying,
		rpt.Stats.TotalProfit,
		rpt.Stats.AverageProfit,
		rpt.Stats.MaxProfit,
		rpt.Stats.MinProfit,
		rpt.Distribution.Heavy,
		rpt.Distribution.Moderate,
		rpt.Distribution.Light,
	)
	if err != nil {
		return fmt.Errorf("insert report header: %w", err)
	}

	entryQuery := `
		INSERT INTO report_entries (
			run_id, rank, actor_id, display_name, profit, trade_count,
			profit_per_trade, total_positions, profitable_positions,
			losing_positions, biggest_win, biggest_loss, enrichment_failed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	for i := range rpt.Entries {
		entry := &rpt.Entries[i]
		_, err = tx.ExecContext(ctx, entryQuery,
			rpt.RunID,
			entry.Rank,
			entry.ActorID,
			entry.DisplayName,
			entry.Profit,
			entry.TradeCount,
			entry.ProfitPerTrade,
			entry.TotalPositions,
			entry.ProfitablePositions,
			entry.LosingPositions,
			entry.BiggestWin,
			entry.BiggestLoss,
			entry.EnrichmentFailed,
		)
		if err != nil {
			return fmt.Errorf("insert report entry %d: %w", entry.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}

	p.logger.Debug("report-stored",
		zap.String("run-id", rpt.RunID),
		zap.Int("entries", len(rpt.Entries)))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
