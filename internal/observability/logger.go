// Package observability constructs the application's structured logger.
package observability

import (
	"log/slog"
	"os"

	"github.com/bkyoung/review-assistant/internal/config"
)

// NewLogger builds a slog.Logger from the logging configuration. The
// "human" format uses the text handler; "json" emits structured records.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
