package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/kalshi-sync/internal/model"
)

const eventUpsert = `
	INSERT INTO ks_events (event_ticker, series_ticker, title, sub_title, status, add_time, update_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (event_ticker) DO UPDATE SET
		series_ticker = EXCLUDED.series_ticker,
		title = EXCLUDED.title,
		sub_title = EXCLUDED.sub_title,
		status = EXCLUDED.status,
		update_time = EXCLUDED.update_time
`

// EventRepo persists event records.
type EventRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewEventRepo creates an event repository.
func NewEventRepo(db *pgxpool.Pool, logger *slog.Logger) *EventRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventRepo{db: db, logger: logger}
}

// SaveEvents upserts the records in one atomic batch and returns the number
// of rows written. Empty input is a no-op returning 0.
func (r *EventRepo) SaveEvents(ctx context.Context, records []model.Event) (int, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(records))
	for i := range records {
		rows = append(rows, eventRow(&records[i], now))
	}
	return saveBatch(ctx, r.db, r.logger, "ks_events", eventUpsert, rows)
}

func eventRow(rec *model.Event, now time.Time) []any {
	return []any{
		rec.EventTicker,
		rec.SeriesTicker,
		rec.Title,
		rec.SubTitle,
		rec.Status,
		timeOr(rec.AddTime, now),
		timeOr(rec.UpdateTime, now),
	}
}
