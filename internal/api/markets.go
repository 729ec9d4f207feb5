package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GetMarketsOptions configures a GetMarkets request. Zero values are
// omitted so server-side defaults apply.
type GetMarketsOptions struct {
	Limit        int
	Cursor       string
	EventTicker  string
	SeriesTicker string
	Status       string
	Tickers      []string
	MinCloseTS   int64
	MaxCloseTS   int64
}

func (o GetMarketsOptions) query() url.Values {
	query := url.Values{}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Cursor != "" {
		query.Set("cursor", o.Cursor)
	}
	if o.EventTicker != "" {
		query.Set("event_ticker", o.EventTicker)
	}
	if o.SeriesTicker != "" {
		query.Set("series_ticker", o.SeriesTicker)
	}
	if o.Status != "" {
		query.Set("status", o.Status)
	}
	if len(o.Tickers) > 0 {
		query.Set("tickers", strings.Join(o.Tickers, ","))
	}
	if o.MinCloseTS > 0 {
		query.Set("min_close_ts", strconv.FormatInt(o.MinCloseTS, 10))
	}
	if o.MaxCloseTS > 0 {
		query.Set("max_close_ts", strconv.FormatInt(o.MaxCloseTS, 10))
	}
	return query
}

// GetMarkets fetches a page of markets as a typed response.
func (c *Client) GetMarkets(ctx context.Context, opts GetMarketsOptions) (*MarketsResponse, error) {
	var resp MarketsResponse
	if err := c.getJSON(ctx, OpGetMarkets, "/markets", opts.query(), true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMarketsRaw fetches the same page undecoded, for callers recovering
// from a typed decode failure.
func (c *Client) GetMarketsRaw(ctx context.Context, opts GetMarketsOptions) ([]byte, error) {
	return c.do(ctx, OpGetMarketsRaw, http.MethodGet, "/markets", opts.query(), nil, nil, true)
}
