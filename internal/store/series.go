package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/kalshi-sync/internal/model"
)

// add_time is deliberately absent from the conflict branch: a matched row
// keeps the add_time from its original insert.
const seriesUpsert = `
	INSERT INTO ks_series (ticker, title, category, status, add_time, update_time)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (ticker) DO UPDATE SET
		title = EXCLUDED.title,
		category = EXCLUDED.category,
		status = EXCLUDED.status,
		update_time = EXCLUDED.update_time
`

// SeriesRepo persists series records.
type SeriesRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewSeriesRepo creates a series repository.
func NewSeriesRepo(db *pgxpool.Pool, logger *slog.Logger) *SeriesRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesRepo{db: db, logger: logger}
}

// SaveSeries upserts the records in one atomic batch and returns the number
// of rows written. Empty input is a no-op returning 0.
func (r *SeriesRepo) SaveSeries(ctx context.Context, records []model.Series) (int, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(records))
	for i := range records {
		rows = append(rows, seriesRow(&records[i], now))
	}
	return saveBatch(ctx, r.db, r.logger, "ks_series", seriesUpsert, rows)
}

func seriesRow(rec *model.Series, now time.Time) []any {
	return []any{
		rec.Ticker,
		rec.Title,
		rec.Category,
		rec.Status,
		timeOr(rec.AddTime, now),
		timeOr(rec.UpdateTime, now),
	}
}
