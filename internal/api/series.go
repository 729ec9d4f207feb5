package api

import (
	"context"
	"net/url"
	"strconv"
)

// SeriesListOptions configures a GetSeriesList request. Zero values are
// omitted so server-side defaults apply.
type SeriesListOptions struct {
	Status   string
	Category string
	Limit    int
	Cursor   string
}

func (o SeriesListOptions) query() url.Values {
	query := url.Values{}
	if o.Status != "" {
		query.Set("status", o.Status)
	}
	if o.Category != "" {
		query.Set("category", o.Category)
	}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Cursor != "" {
		query.Set("cursor", o.Cursor)
	}
	return query
}

// GetSeriesList fetches a page of series.
func (c *Client) GetSeriesList(ctx context.Context, opts SeriesListOptions) (*SeriesListResponse, error) {
	var resp SeriesListResponse
	if err := c.getJSON(ctx, OpGetSeries, "/series", opts.query(), true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
