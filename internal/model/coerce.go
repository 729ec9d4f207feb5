package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coercion helpers for values coming out of parsed JSON. All are total:
// a value of the wrong shape yields nil (or an invalid NullDecimal), never
// an error, so one malformed field cannot abort a page of records.

func asString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func asBool(v any) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

func asDecimal(v any) decimal.NullDecimal {
	switch n := v.(type) {
	case float64:
		return decimal.NullDecimal{Decimal: decimal.NewFromFloat(n), Valid: true}
	case int:
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(int64(n)), Valid: true}
	case int64:
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(n), Valid: true}
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: d, Valid: true}
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: d, Valid: true}
	default:
		return decimal.NullDecimal{}
	}
}

func asInt(v any) *int64 {
	switch n := v.(type) {
	case float64:
		i := int64(n)
		return &i
	case int:
		i := int64(n)
		return &i
	case int64:
		return &n
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil
		}
		return &i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil
		}
		return &i
	default:
		return nil
	}
}

func asTime(v any) *time.Time {
	if s, ok := v.(string); ok {
		return ParseTime(s)
	}
	return nil
}

// ParseTime parses an ISO-8601 timestamp. A trailing Z reads as UTC.
// Unparsable input yields nil.
func ParseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	// Without timezone
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return &t
	}
	return nil
}

// keyString extracts the natural-key string; non-strings collapse to "".
func keyString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// TickerList extracts opaque market identifiers from an events payload.
// Items may be plain ticker strings or nested market objects; anything
// else is skipped. A missing value yields nil.
func TickerList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch x := item.(type) {
		case string:
			out = append(out, x)
		case map[string]any:
			if t := asString(x["ticker"]); t != nil {
				out = append(out, *t)
			}
		}
	}
	return out
}
