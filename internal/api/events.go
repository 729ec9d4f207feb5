package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetEventsOptions configures a GetEvents request. Only non-zero filters
// are forwarded; the boolean flags are pointers so "unset" and "false"
// stay distinct.
type GetEventsOptions struct {
	Limit             int
	Cursor            string
	SeriesTicker      string
	Status            string
	WithNestedMarkets *bool
	WithMilestones    *bool
	MinCloseTS        int64
}

func (o GetEventsOptions) query() url.Values {
	query := url.Values{}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Cursor != "" {
		query.Set("cursor", o.Cursor)
	}
	if o.SeriesTicker != "" {
		query.Set("series_ticker", o.SeriesTicker)
	}
	if o.Status != "" {
		query.Set("status", o.Status)
	}
	if o.WithNestedMarkets != nil {
		query.Set("with_nested_markets", strconv.FormatBool(*o.WithNestedMarkets))
	}
	if o.WithMilestones != nil {
		query.Set("with_milestones", strconv.FormatBool(*o.WithMilestones))
	}
	if o.MinCloseTS > 0 {
		query.Set("min_close_ts", strconv.FormatInt(o.MinCloseTS, 10))
	}
	return query
}

// GetEvents fetches a page of events as a typed response.
func (c *Client) GetEvents(ctx context.Context, opts GetEventsOptions) (*EventsResponse, error) {
	var resp EventsResponse
	if err := c.getJSON(ctx, OpGetEvents, "/events", opts.query(), true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEventsRaw fetches the same page undecoded, for callers recovering
// from a typed decode failure.
func (c *Client) GetEventsRaw(ctx context.Context, opts GetEventsOptions) ([]byte, error) {
	return c.do(ctx, OpGetEventsRaw, http.MethodGet, "/events", opts.query(), nil, nil, true)
}
