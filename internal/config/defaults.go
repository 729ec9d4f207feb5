package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost           = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout     = 30 * time.Second
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 10
	DefaultMinConns       = 2
	DefaultLogLevel       = "info"
	DefaultLogDirectory   = "logs"
	DefaultLogFilename    = "kalshi-sync.log"
	DefaultLogMaxAgeDays  = 14
	DefaultPageLimit      = 200
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = 1 * time.Second
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.Host == "" {
		c.API.Host = DefaultHost
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Directory == "" {
		c.Log.Directory = DefaultLogDirectory
	}
	if c.Log.Filename == "" {
		c.Log.Filename = DefaultLogFilename
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = DefaultLogMaxAgeDays
	}

	// Sync defaults
	if c.Sync.PageLimit == 0 {
		c.Sync.PageLimit = DefaultPageLimit
	}
	if c.Sync.MaxRetries == 0 {
		c.Sync.MaxRetries = DefaultMaxRetries
	}
	if c.Sync.RetryBaseDelay == 0 {
		c.Sync.RetryBaseDelay = DefaultRetryBaseDelay
	}
}
