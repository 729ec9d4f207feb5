// Package config loads and validates the sync tool's YAML configuration.
//
// Config files support ${VAR} environment variable expansion, so secrets
// (API key id, database password) can live in the environment or a .env file
// rather than on disk.
package config

import "time"

// Config is the root configuration for the sync tool.
type Config struct {
	API      APIConfig  `yaml:"api"`
	Database DBConfig   `yaml:"database"`
	Log      LogConfig  `yaml:"log"`
	Sync     SyncConfig `yaml:"sync"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	Host           string        `yaml:"host"`
	KeyID          string        `yaml:"key_id"`           // API key ID (for KALSHI-ACCESS-KEY header)
	PrivateKeyPath string        `yaml:"private_key_path"` // Path to RSA private key PEM file
	Timeout        time.Duration `yaml:"timeout"`
}

// AuthConfigured reports whether authenticated calls are possible.
// Both the key ID and the private key path must be present; either one
// alone is not enough.
func (a APIConfig) AuthConfigured() bool {
	return a.KeyID != "" && a.PrivateKeyPath != ""
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	Directory  string `yaml:"directory"`
	Filename   string `yaml:"filename"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// SyncConfig holds catalog sync settings.
type SyncConfig struct {
	PageLimit      int           `yaml:"page_limit"`
	PageDelay      time.Duration `yaml:"page_delay"`       // pause between pages (rate-limit relief)
	Interval       time.Duration `yaml:"interval"`         // 0 = run once and exit
	MaxPages       int           `yaml:"max_pages"`        // 0 = unbounded
	Status         string        `yaml:"status"`           // optional server-side status filter
	MaxRetries     int           `yaml:"max_retries"`      // per-page retries of retryable API errors
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"` // initial backoff interval
}
