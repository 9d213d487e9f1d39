// Package logging configures the process-wide structured logger. Both
// binaries log JSON to stdout with a service attribute, so one query
// separates api and worker lines in the aggregator.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds the JSON logger and installs it as the slog default, so
// infrastructure packages that log through the default logger inherit
// the service attribute too.
func Setup(service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(level),
	})
	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)
	return logger
}

func Level(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
