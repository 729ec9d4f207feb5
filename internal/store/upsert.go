package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// saveBatch submits one upsert statement per row as a single pgx.Batch
// inside one transaction. Any failure rolls the whole batch back and comes
// back as *SaveError.
func saveBatch(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger, table, statement string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		logger.Info("no rows supplied; skipping save", "table", table)
		return 0, nil
	}

	start := time.Now()

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, &SaveError{Table: table, Err: err}
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, args := range rows {
		batch.Queue(statement, args...)
	}

	results := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			logger.Error("bulk upsert failed", "table", table, "error", err)
			return 0, &SaveError{Table: table, Err: err}
		}
	}
	if err := results.Close(); err != nil {
		logger.Error("bulk upsert failed", "table", table, "error", err)
		return 0, &SaveError{Table: table, Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("commit failed", "table", table, "error", err)
		return 0, &SaveError{Table: table, Err: err}
	}

	logger.Info("upserted rows",
		"table", table,
		"count", len(rows),
		"duration", time.Since(start),
	)
	return len(rows), nil
}

// timeOr backfills missing audit timestamps with the batch's save time.
func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}
