package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-sync/internal/model"
)

// Typed-response adapters. These cover the primary (typed) fetch path;
// model's FromMap functions cover the raw-JSON fallback path. Both produce
// the same record shapes and both are total.

// ToRecord converts an APISeries to a model.Series.
func (s *APISeries) ToRecord() model.Series {
	return model.Series{
		Ticker:   s.Ticker,
		Title:    s.Title,
		Category: s.Category,
		Status:   s.Status,
	}
}

// ToRecord converts an APIEvent to a model.Event.
func (e *APIEvent) ToRecord() model.Event {
	return model.Event{
		EventTicker:  e.EventTicker,
		SeriesTicker: e.SeriesTicker,
		SubTitle:     e.SubTitle,
		Title:        e.Title,
		Status:       e.Status,
		Markets:      model.TickerList(e.Markets),
	}
}

// ToRecord converts an APIMarket to a model.Market.
func (m *APIMarket) ToRecord() model.Market {
	subTitle := m.Subtitle
	if subTitle == nil {
		subTitle = m.SubTitle
	}
	return model.Market{
		Ticker:         m.Ticker,
		SeriesTicker:   m.SeriesTicker,
		EventTicker:    m.EventTicker,
		Title:          m.Title,
		SubTitle:       subTitle,
		Status:         m.Status,
		OpenTime:       parseTimePtr(m.OpenTime),
		CloseTime:      parseTimePtr(m.CloseTime),
		ExpirationTime: parseTimePtr(m.ExpirationTime),
		YesBid:         priceOf(m.YesBid),
		YesAsk:         priceOf(m.YesAsk),
		NoBid:          priceOf(m.NoBid),
		NoAsk:          priceOf(m.NoAsk),
		LastPrice:      priceOf(m.LastPrice),
		Volume:         m.Volume,
		Volume24h:      m.Volume24h,
		CapCount:       m.CapCount,
		Result:         m.Result,
		CanCloseEarly:  m.CanCloseEarly,
	}
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return model.ParseTime(*s)
}

func priceOf(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*v), Valid: true}
}
