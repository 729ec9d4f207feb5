package api

import "encoding/json"

// ExchangeStatusResponse from GET /exchange/status
type ExchangeStatusResponse struct {
	ExchangeActive      bool   `json:"exchange_active"`
	TradingActive       bool   `json:"trading_active"`
	EstimatedResumeTime string `json:"exchange_estimated_resume_time,omitempty"`
}

// SeriesListResponse from GET /series
type SeriesListResponse struct {
	Series []APISeries `json:"series"`
	Cursor string      `json:"cursor"`
}

// APISeries represents a series from the Kalshi API. Optional fields are
// pointers so a missing key is distinguishable from an empty value.
type APISeries struct {
	Ticker   string  `json:"ticker"`
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Status   *string `json:"status"`
}

// EventsResponse from GET /events
type EventsResponse struct {
	Events     []APIEvent        `json:"events"`
	Milestones []json.RawMessage `json:"milestones"`
	Cursor     string            `json:"cursor"`
}

// APIEvent represents an event from the Kalshi API. Markets stays loosely
// typed: the API sends either ticker strings or nested market objects
// depending on with_nested_markets.
type APIEvent struct {
	EventTicker  string  `json:"event_ticker"`
	SeriesTicker *string `json:"series_ticker"`
	SubTitle     *string `json:"sub_title"`
	Title        *string `json:"title"`
	Status       *string `json:"status"`
	Markets      []any   `json:"markets"`
}

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket represents a market from the Kalshi API.
type APIMarket struct {
	Ticker       string  `json:"ticker"`
	SeriesTicker *string `json:"series_ticker"`
	EventTicker  *string `json:"event_ticker"`
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	SubTitle     *string `json:"sub_title"` // older payloads
	Status       *string `json:"status"`

	// Timestamps (ISO 8601)
	OpenTime       *string `json:"open_time"`
	CloseTime      *string `json:"close_time"`
	ExpirationTime *string `json:"expiration_time"`

	// Prices (dollars)
	YesBid    *float64 `json:"yes_bid"`
	YesAsk    *float64 `json:"yes_ask"`
	NoBid     *float64 `json:"no_bid"`
	NoAsk     *float64 `json:"no_ask"`
	LastPrice *float64 `json:"last_price"`

	// Volume
	Volume    *int64 `json:"volume"`
	Volume24h *int64 `json:"volume_24h"`
	CapCount  *int64 `json:"cap_count"`

	// Settlement
	Result        *string `json:"result"`
	CanCloseEarly *bool   `json:"can_close_early"`
}
