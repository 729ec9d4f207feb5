// Package api provides the Kalshi REST API client used by the sync tool.
//
// REST endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// Every call goes through one pipeline: auth-header injection (RSA-PSS via
// internal/auth), a start-of-call debug log, and exactly one terminal log
// carrying the operation name and wall-clock duration. Remote and transport
// failures surface as *APIError; a typed response that does not decode
// surfaces as *DecodeError so callers can fall back to the raw variants
// (GetEventsRaw, GetMarketsRaw). The client never retries; retry policy
// belongs to the caller.
package api
