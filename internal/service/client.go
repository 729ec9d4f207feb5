// Package service fetches catalog resources page by page and normalizes
// them into model records.
//
// Each service takes the typed path first; when the typed response does not
// decode (*api.DecodeError) it re-issues the same logical request through the
// raw variant and normalizes via the map adapters. If the raw bytes do not
// decode either, the page degrades to an empty result with an empty cursor so
// pagination terminates instead of failing the sync.
package service

import (
	"context"

	"github.com/rickgao/kalshi-sync/internal/api"
)

// ExchangeClient is the slice of the API client the services consume.
type ExchangeClient interface {
	GetSeriesList(ctx context.Context, opts api.SeriesListOptions) (*api.SeriesListResponse, error)
	GetEvents(ctx context.Context, opts api.GetEventsOptions) (*api.EventsResponse, error)
	GetEventsRaw(ctx context.Context, opts api.GetEventsOptions) ([]byte, error)
	GetMarkets(ctx context.Context, opts api.GetMarketsOptions) (*api.MarketsResponse, error)
	GetMarketsRaw(ctx context.Context, opts api.GetMarketsOptions) ([]byte, error)
}
