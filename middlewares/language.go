package middlewares

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/polyglot/internal"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/langurl"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

// Request inputs read by the Language middleware by default.
const (
	AcceptLanguageHeader = "Accept-Language"
	ClientLocalesHeader  = "X-Client-Locales"
	LocaleQueryParam     = "locale"
)

type languageSourceKey struct{}

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	// Hints yields platform locale hints, most preferred first.
	Hints internal.Extractor
	// IgnorePath disables taking the language from a /{lang}/ URL prefix.
	IgnorePath bool
}

// LanguageOption configures LanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithLanguageHints replaces the hint sources.
func WithLanguageHints(ext internal.Extractor) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Hints = ext
	}
}

// WithLanguageIgnorePath always negotiates, even for language-prefixed URLs.
func WithLanguageIgnorePath() LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.IgnorePath = true
	}
}

// Language stores the language to serve in the request context.
//
// A URL whose first segment is an available language uses that language.
// Otherwise the negotiator picks one from Accept-Language, then the hints
// (by default the X-Client-Locales header and the "locale" query
// parameter), then the default. Negotiated responses get a Vary header.
func Language(n *i18n.Negotiator, opts ...LanguageOption) internal.Middleware {
	cfg := &LanguageConfig{
		Hints: internal.NewExtractor(
			internal.FromHeader(ClientLocalesHeader),
			internal.FromQuery(LocaleQueryParam),
		),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if !cfg.IgnorePath {
				available := n.Available(c)
				isAvailable := func(s string) bool { return slices.Contains(available, s) }
				if lang, _, ok := langurl.Split(c.Request().URL.Path, isAvailable); ok {
					setLanguage(c, lang, i18n.SourcePath)
					return next(c)
				}
			}

			res := n.Negotiate(c, c.Header(AcceptLanguageHeader), cfg.Hints.ExtractAll(c))

			h := c.Response().Header()
			h.Add("Vary", AcceptLanguageHeader)
			h.Add("Vary", ClientLocalesHeader)

			setLanguage(c, res.Language, res.Source)
			c.LogDebug("language negotiated",
				slog.String("lang", res.Language),
				slog.String("source", string(res.Source)),
			)
			return next(c)
		}
	}
}

func setLanguage(c internal.Context, lang string, source i18n.Source) {
	c.Set(internal.LanguageKey{}, lang)
	c.Set(languageSourceKey{}, source)
}

// GetLanguage returns the language chosen for the request, or "" when the
// middleware did not run.
func GetLanguage(c internal.Context) string {
	return internal.ContextValue[string](c, internal.LanguageKey{})
}

// GetLanguageSource reports how the request's language was chosen.
func GetLanguageSource(c internal.Context) i18n.Source {
	return internal.ContextValue[i18n.Source](c, languageSourceKey{})
}

// LanguageExtractor adds "lang" to log records.
func LanguageExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(internal.LanguageKey{}).(string); ok && v != "" {
			return slog.String("lang", v), true
		}
		return slog.Attr{}, false
	}
}
