package model

// Map adapters build records from raw-JSON payloads (the fallback path).
// They accept any map, including nil, and never fail.

// SeriesFromMap builds a Series record from a parsed JSON object.
func SeriesFromMap(m map[string]any) Series {
	return Series{
		Ticker:   keyString(m["ticker"]),
		Title:    asString(m["title"]),
		Category: asString(m["category"]),
		Status:   asString(m["status"]),
	}
}

// EventFromMap builds an Event record from a parsed JSON object.
func EventFromMap(m map[string]any) Event {
	return Event{
		EventTicker:  keyString(m["event_ticker"]),
		SeriesTicker: asString(m["series_ticker"]),
		SubTitle:     asString(m["sub_title"]),
		Title:        asString(m["title"]),
		Status:       asString(m["status"]),
		Markets:      TickerList(m["markets"]),
	}
}

// MarketFromMap builds a Market record from a parsed JSON object.
func MarketFromMap(m map[string]any) Market {
	subTitle := asString(m["subtitle"])
	if subTitle == nil {
		subTitle = asString(m["sub_title"])
	}
	return Market{
		Ticker:         keyString(m["ticker"]),
		SeriesTicker:   asString(m["series_ticker"]),
		EventTicker:    asString(m["event_ticker"]),
		Title:          asString(m["title"]),
		SubTitle:       subTitle,
		Status:         asString(m["status"]),
		OpenTime:       asTime(m["open_time"]),
		CloseTime:      asTime(m["close_time"]),
		ExpirationTime: asTime(m["expiration_time"]),
		YesBid:         asDecimal(m["yes_bid"]),
		YesAsk:         asDecimal(m["yes_ask"]),
		NoBid:          asDecimal(m["no_bid"]),
		NoAsk:          asDecimal(m["no_ask"]),
		LastPrice:      asDecimal(m["last_price"]),
		Volume:         asInt(m["volume"]),
		Volume24h:      asInt(m["volume_24h"]),
		CapCount:       asInt(m["cap_count"]),
		Result:         asString(m["result"]),
		CanCloseEarly:  asBool(m["can_close_early"]),
	}
}
