// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide slog logger. Log lines go to
// the configured log file and to stderr, so daemon output is visible both
// live and after the fact.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/omriariav/pdf-to-md/pkg/types"
)

// ParseLevel maps a config log_level string to a slog.Level. The aliases
// "warning" and "critical" map to warn and error; slog has no critical
// level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "critical":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported log_level %q: use debug, info, warn, or error", s)
	}
}

// Setup opens the log file append-only and installs a text handler writing
// to both the file and stderr as the default logger. The returned function
// closes the log file.
func Setup(set *types.Settings) (func() error, error) {
	level, err := ParseLevel(set.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(set.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(set.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", set.LogFile, err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(f, os.Stderr), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return f.Close, nil
}
