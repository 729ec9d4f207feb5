package api

import "context"

// GetExchangeStatus fetches the exchange heartbeat. Unauthenticated.
func (c *Client) GetExchangeStatus(ctx context.Context) (*ExchangeStatusResponse, error) {
	var resp ExchangeStatusResponse
	if err := c.getJSON(ctx, OpGetExchangeStatus, "/exchange/status", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
