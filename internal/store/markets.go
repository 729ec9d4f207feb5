package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/kalshi-sync/internal/model"
)

const marketUpsert = `
	INSERT INTO ks_markets (
		ticker, event_ticker, series_ticker, title, sub_title, status,
		open_time, close_time, expiration_time,
		yes_bid, yes_ask, no_bid, no_ask, last_price,
		volume, volume_24h, result, can_close_early, cap_count,
		add_time, update_time
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	ON CONFLICT (ticker) DO UPDATE SET
		event_ticker = EXCLUDED.event_ticker,
		series_ticker = EXCLUDED.series_ticker,
		title = EXCLUDED.title,
		sub_title = EXCLUDED.sub_title,
		status = EXCLUDED.status,
		open_time = EXCLUDED.open_time,
		close_time = EXCLUDED.close_time,
		expiration_time = EXCLUDED.expiration_time,
		yes_bid = EXCLUDED.yes_bid,
		yes_ask = EXCLUDED.yes_ask,
		no_bid = EXCLUDED.no_bid,
		no_ask = EXCLUDED.no_ask,
		last_price = EXCLUDED.last_price,
		volume = EXCLUDED.volume,
		volume_24h = EXCLUDED.volume_24h,
		result = EXCLUDED.result,
		can_close_early = EXCLUDED.can_close_early,
		cap_count = EXCLUDED.cap_count,
		update_time = EXCLUDED.update_time
`

// MarketRepo persists market records.
type MarketRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewMarketRepo creates a market repository.
func NewMarketRepo(db *pgxpool.Pool, logger *slog.Logger) *MarketRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketRepo{db: db, logger: logger}
}

// SaveMarkets upserts the records in one atomic batch and returns the
// number of rows written. Empty input is a no-op returning 0.
func (r *MarketRepo) SaveMarkets(ctx context.Context, records []model.Market) (int, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(records))
	for i := range records {
		rows = append(rows, marketRow(&records[i], now))
	}
	return saveBatch(ctx, r.db, r.logger, "ks_markets", marketUpsert, rows)
}

func marketRow(rec *model.Market, now time.Time) []any {
	return []any{
		rec.Ticker,
		rec.EventTicker,
		rec.SeriesTicker,
		rec.Title,
		rec.SubTitle,
		rec.Status,
		rec.OpenTime,
		rec.CloseTime,
		rec.ExpirationTime,
		rec.YesBid,
		rec.YesAsk,
		rec.NoBid,
		rec.NoAsk,
		rec.LastPrice,
		rec.Volume,
		rec.Volume24h,
		rec.Result,
		rec.CanCloseEarly,
		rec.CapCount,
		timeOr(rec.AddTime, now),
		timeOr(rec.UpdateTime, now),
	}
}
