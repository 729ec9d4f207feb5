package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rickgao/kalshi-sync/internal/auth"
)

// Client provides access to the Kalshi REST API.
type Client struct {
	baseURL    string
	creds      *auth.Credentials // nil when authentication is not configured
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. Credentials load only when both
// keyID and privateKeyPath are set; a bad key file is a construction error.
func NewClient(host, keyID, privateKeyPath string, opts ...ClientOption) (*Client, error) {
	host = strings.TrimRight(host, "/")
	if _, err := url.Parse(host); err != nil {
		return nil, fmt.Errorf("parse host: %w", err)
	}

	c := &Client{
		baseURL: host,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	if keyID != "" && privateKeyPath != "" {
		creds, err := auth.LoadCredentials(keyID, privateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("load credentials: %w", err)
		}
		c.creds = creds
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AuthEnabled reports whether authenticated calls are possible.
// Computed once at construction; it never changes afterwards.
func (c *Client) AuthEnabled() bool {
	return c.creds != nil
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCredentials sets pre-loaded credentials, bypassing the key file.
func WithCredentials(creds *auth.Credentials) ClientOption {
	return func(c *Client) {
		c.creds = creds
	}
}
