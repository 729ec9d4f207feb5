package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Operation names a logical API call for logging metadata.
type Operation string

// Logical operations consumed from the exchange.
const (
	OpGetSeries         Operation = "get_series"
	OpGetEvents         Operation = "get_events"
	OpGetEventsRaw      Operation = "get_events_raw"
	OpGetMarkets        Operation = "get_markets"
	OpGetMarketsRaw     Operation = "get_markets_raw"
	OpGetExchangeStatus Operation = "get_exchange_status"
)

// ErrAuthNotConfigured is returned when an authenticated call is attempted
// without credentials. Detected before any network I/O.
var ErrAuthNotConfigured = errors.New("authenticated call requested but API credentials are missing")

// APIError represents a remote or transport failure. StatusCode is 0 when
// the request never reached the server.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("kalshi api error during %q: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("kalshi api error %d during %q: %s", e.StatusCode, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429 || e.StatusCode == 0
}

// DecodeError reports that a successful response did not match the typed
// schema. It is the explicit shape-mismatch result that drives the services'
// raw-parsing fallback; it is never a remote failure.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RequestOptions configures HTTPRequest.
type RequestOptions struct {
	Query   url.Values
	Body    any // JSON-encoded when non-nil
	Headers http.Header
	Timeout time.Duration // per-request override, 0 = client default
}

// HTTPRequest performs a raw HTTP request through the standard pipeline:
// URL resolution against the configured host, auth-header injection,
// start/terminal logging with the operation label "METHOD URL", and uniform
// error mapping. Returns the response body; any non-2xx status is an error.
func (c *Client) HTTPRequest(ctx context.Context, method, rawURL string, authenticated bool, opts RequestOptions) ([]byte, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	method = strings.ToUpper(method)
	op := Operation(method + " " + c.resolveURL(rawURL))
	return c.do(ctx, op, method, rawURL, opts.Query, opts.Body, opts.Headers, authenticated)
}

// do executes one request. Exactly one terminal log is emitted per call:
// info with duration on success, error with duration on failure.
func (c *Client) do(ctx context.Context, op Operation, method, rawURL string, query url.Values, body any, headers http.Header, authenticated bool) ([]byte, error) {
	if authenticated && c.creds == nil {
		return nil, ErrAuthNotConfigured
	}

	fullURL := c.resolveURL(rawURL)
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	start := time.Now()
	c.logger.Debug("kalshi request started",
		"operation", string(op),
		"authenticated", authenticated,
	)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if authenticated {
		// Signature covers the path only, without query string or host.
		authHeaders, err := c.creds.Sign(method, req.URL.Path)
		if err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
		for key, v := range authHeaders {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(op, authenticated, start, &APIError{
			Operation: string(op),
			Message:   err.Error(),
			Err:       err,
		})
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(op, authenticated, start, &APIError{
			Operation:  string(op),
			StatusCode: resp.StatusCode,
			Message:    "read response: " + err.Error(),
			Err:        err,
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(op, authenticated, start, &APIError{
			Operation:  string(op),
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       respBody,
		})
	}

	c.logger.Info("kalshi request completed",
		"operation", string(op),
		"authenticated", authenticated,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return respBody, nil
}

func (c *Client) fail(op Operation, authenticated bool, start time.Time, apiErr *APIError) error {
	c.logger.Error("kalshi request failed",
		"operation", string(op),
		"authenticated", authenticated,
		"duration", time.Since(start),
		"error", apiErr.Error(),
	)
	return apiErr
}

// getJSON performs a GET and decodes the typed response. Decode failures
// return *DecodeError, distinct from remote errors.
func (c *Client) getJSON(ctx context.Context, op Operation, path string, query url.Values, authenticated bool, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, path, query, nil, nil, authenticated)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Operation: string(op), Err: err}
	}
	return nil
}

// resolveURL joins relative paths against the configured host; absolute
// URLs pass through unchanged.
func (c *Client) resolveURL(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return c.baseURL + "/" + strings.TrimLeft(raw, "/")
}
