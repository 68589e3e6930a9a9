package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New creates a logger writing to stdout with optional context extractors.
// An invalid configuration falls back to JSON at info level; call
// Config.Validate first to reject it instead.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	level, err := cfg.level()
	if err != nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, FormatText) {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	if sentryHandler, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = newMultiHandler(handler, sentryHandler)
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}
