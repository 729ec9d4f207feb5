package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Series represents a collection of related events (e.g., "US Presidential Election").
type Series struct {
	Ticker     string // Primary key (e.g., "KXPRES")
	Title      *string
	Category   *string
	Status     *string
	AddTime    *time.Time // Backfilled with now() at save time when nil
	UpdateTime *time.Time
}

// Event represents a specific event within a series (e.g., "2028 Presidential Election").
type Event struct {
	EventTicker  string  // Primary key (e.g., "KXPRES-28")
	SeriesTicker *string // Foreign reference to Series, not enforced in-memory
	SubTitle     *string
	Title        *string
	Status       *string
	Markets      []string // Nested market tickers, when the API sends them
	AddTime      *time.Time
	UpdateTime   *time.Time
}

// Market represents a tradeable prediction market.
type Market struct {
	Ticker       string  // Primary key (e.g., "KXPRES-28-DEM")
	SeriesTicker *string // Foreign reference to Series
	EventTicker  *string // Foreign reference to Event
	Title        *string
	SubTitle     *string
	Status       *string

	// Timing
	OpenTime       *time.Time
	CloseTime      *time.Time
	ExpirationTime *time.Time

	// Prices (dollars)
	YesBid    decimal.NullDecimal
	YesAsk    decimal.NullDecimal
	NoBid     decimal.NullDecimal
	NoAsk     decimal.NullDecimal
	LastPrice decimal.NullDecimal

	// Volume
	Volume    *int64
	Volume24h *int64
	CapCount  *int64

	// Settlement
	Result        *string
	CanCloseEarly *bool

	AddTime    *time.Time
	UpdateTime *time.Time
}
