// Package logging configures structured logging for the sync tool.
//
// Log records go to stdout and to a rotating file under the configured
// directory. Components receive their logger explicitly at construction;
// slog.Default is only a fallback for code given a nil logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup creates the log directory and returns a logger writing to stdout
// plus a rotating file.
func Setup(level, directory, filename string, maxAgeDays int) (*slog.Logger, error) {
	if directory == "" {
		directory = "logs"
	}
	if filename == "" {
		filename = "kalshi-sync.log"
	}
	if maxAgeDays <= 0 {
		maxAgeDays = 14
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(directory, filename),
		MaxSize:    100, // MB
		MaxAge:     maxAgeDays,
		MaxBackups: maxAgeDays,
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, rotator), &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler), nil
}

// ParseLevel converts a config string into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
