// Package observability provides simple logging utilities.
//
// This is a minimal implementation focused on structured logging with slog.
// Metrics and tracing can be added later when needed.
package observability

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/marketlens/marketlens-backend/internal/config"
)

// NewLogger creates a structured logger based on config
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// Choose format
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level})
	}

	return slog.New(handler)
}
