package service

import (
	"context"
	"log/slog"

	"github.com/rickgao/kalshi-sync/internal/api"
	"github.com/rickgao/kalshi-sync/internal/model"
)

// SeriesService encapsulates series-related catalog queries.
type SeriesService struct {
	client ExchangeClient
	logger *slog.Logger
}

// NewSeriesService creates a series service.
func NewSeriesService(client ExchangeClient, logger *slog.Logger) *SeriesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesService{client: client, logger: logger}
}

// SeriesFilters holds the optional series query filters. Zero values are
// not forwarded.
type SeriesFilters struct {
	Status   string
	Category string
	Limit    int
	Cursor   string
}

// ListSeriesRecords fetches one page of series as normalized records plus
// the next-page cursor ("" = end of data).
func (s *SeriesService) ListSeriesRecords(ctx context.Context, f SeriesFilters) ([]model.Series, string, error) {
	resp, err := s.client.GetSeriesList(ctx, api.SeriesListOptions{
		Status:   f.Status,
		Category: f.Category,
		Limit:    f.Limit,
		Cursor:   f.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	records := make([]model.Series, 0, len(resp.Series))
	for i := range resp.Series {
		records = append(records, resp.Series[i].ToRecord())
	}
	return records, resp.Cursor, nil
}
