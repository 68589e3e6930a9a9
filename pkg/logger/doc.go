// Package logger builds the service's structured slog logger.
//
// Output is JSON by default. Setting Format to "text" switches to a colored,
// human-readable handler for local development. When a Sentry DSN is
// configured, errors are also reported to Sentry as issues and warnings are
// kept as Sentry logs. Without a DSN only local output is used, so the same
// configuration works in development and production.
//
// # Context extractors
//
// A ContextExtractor pulls a request-scoped value from the context on every
// log call:
//
//	log := logger.New(cfg,
//		logger.StringExtractor(requestIDKey{}, "request_id"),
//	)
//	log.InfoContext(ctx, "page served")
//	// {"level":"INFO","msg":"page served","request_id":"3f2c..."}
//
// NewLogHandlerDecorator applies the same extraction to any slog.Handler.
//
// # Configuration
//
//	LOG_LEVEL           debug, info, warn or error (default: info)
//	LOG_FORMAT          json or text (default: json)
//	SENTRY_DSN          enables Sentry reporting when set
//	SENTRY_ENVIRONMENT  Sentry environment name (default: production)
//	SENTRY_WARNINGS     forward warnings as Sentry logs (default: true)
//
// Use NewNope in tests and as a default when no logger is supplied.
package logger
