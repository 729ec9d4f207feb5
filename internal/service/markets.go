package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/model"
)

// MarketsService encapsulates market-related catalog queries.
type MarketsService struct {
	client ExchangeClient
	logger *slog.Logger
}

// NewMarketsService creates a markets service.
func NewMarketsService(client ExchangeClient, logger *slog.Logger) *MarketsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketsService{client: client, logger: logger}
}

// MarketFilters holds the optional market query filters. Zero values are
// not forwarded.
type MarketFilters struct {
	Limit        int
	Cursor       string
	EventTicker  string
	SeriesTicker string
	Status       string
	Tickers      []string
	MinCloseTS   int64
	MaxCloseTS   int64
}

func (f MarketFilters) options() api.GetMarketsOptions {
	return api.GetMarketsOptions{
		Limit:        f.Limit,
		Cursor:       f.Cursor,
		EventTicker:  f.EventTicker,
		SeriesTicker: f.SeriesTicker,
		Status:       f.Status,
		Tickers:      f.Tickers,
		MinCloseTS:   f.MinCloseTS,
		MaxCloseTS:   f.MaxCloseTS,
	}
}

// ListMarketRecords fetches one page of markets as normalized records plus
// the next-page cursor ("" = end of data). A typed decode failure falls
// back to raw parsing of the same request; if the raw payload does not
// decode either, the page comes back empty.
func (s *MarketsService) ListMarketRecords(ctx context.Context, f MarketFilters) ([]model.Market, string, error) {
	opts := f.options()

	resp, err := s.client.GetMarkets(ctx, opts)
	if err == nil {
		records := make([]model.Market, 0, len(resp.Markets))
		for i := range resp.Markets {
			records = append(records, resp.Markets[i].ToRecord())
		}
		return records, resp.Cursor, nil
	}

	var decodeErr *api.DecodeError
	if !errors.As(err, &decodeErr) {
		return nil, "", err
	}

	s.logger.Warn("market payload validation failed; falling back to raw parsing",
		"error", decodeErr.Err,
	)

	body, err := s.client.GetMarketsRaw(ctx, opts)
	if err != nil {
		return nil, "", err
	}

	var payload struct {
		Markets []map[string]any `json:"markets"`
		Cursor  string           `json:"cursor"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		s.logger.Error("unable to decode market payload", "error", err)
		return nil, "", nil
	}

	records := make([]model.Market, 0, len(payload.Markets))
	for _, item := range payload.Markets {
		records = append(records, model.MarketFromMap(item))
	}
	return records, payload.Cursor, nil
}
