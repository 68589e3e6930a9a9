package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" yaml:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"environment"`
	// WarningsAsLogs also forwards warnings as Sentry logs. Errors always create issues.
	WarningsAsLogs bool `env:"SENTRY_WARNINGS" envDefault:"true" yaml:"warnings"`
}

// newSentryHandler initializes the Sentry SDK. It reports false when the DSN
// is empty or initialization fails, in which case only local output is used.
func newSentryHandler(cfg SentryConfig, local slog.Handler) (slog.Handler, bool) {
	if cfg.DSN == "" {
		return nil, false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil, false
	}

	logLevel := []slog.Level{slog.LevelError}
	if cfg.WarningsAsLogs {
		logLevel = []slog.Level{slog.LevelWarn, slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background()), true
}
