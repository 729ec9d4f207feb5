package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.Host == "" {
		return errors.New("api.host is required")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout cannot be negative")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	if c.Log.MaxAgeDays < 0 {
		return errors.New("log.max_age_days cannot be negative")
	}

	if c.Sync.PageLimit < 1 || c.Sync.PageLimit > 1000 {
		return fmt.Errorf("sync.page_limit must be between 1 and 1000, got %d", c.Sync.PageLimit)
	}
	if c.Sync.PageDelay < 0 {
		return errors.New("sync.page_delay cannot be negative")
	}
	if c.Sync.Interval < 0 {
		return errors.New("sync.interval cannot be negative")
	}
	if c.Sync.MaxPages < 0 {
		return errors.New("sync.max_pages cannot be negative")
	}
	if c.Sync.MaxRetries < 0 {
		return errors.New("sync.max_retries cannot be negative")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
