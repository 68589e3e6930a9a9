package middlewares_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/internal"
	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

func languageApp(t *testing.T, mw internal.Middleware) http.Handler {
	t.Helper()

	echo := func(c internal.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"lang":   middlewares.GetLanguage(c),
			"source": string(middlewares.GetLanguageSource(c)),
			"ctx":    c.Language(),
		})
	}
	return internal.New(
		internal.WithMiddleware(mw),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", echo)
			r.GET("/*", echo)
		})),
	)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	app := languageApp(t, middlewares.Language(newNegotiator(t)))

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		clientLocales  string
		wantLang       string
		wantSource     i18n.Source
	}{
		{
			name:           "accept-language by quality",
			target:         "/",
			acceptLanguage: "fr;q=0.5,es;q=0.9,en;q=0.7",
			wantLang:       "es",
			wantSource:     i18n.SourceHeader,
		},
		{
			name:           "regional tag matches base",
			target:         "/lessons",
			acceptLanguage: "uk-UA,uk;q=0.9",
			wantLang:       "uk",
			wantSource:     i18n.SourceHeader,
		},
		{
			name:           "header hint",
			target:         "/",
			acceptLanguage: "ja-JP,ja;q=0.9",
			clientLocales:  "de-DE, uk-UA",
			wantLang:       "uk",
			wantSource:     i18n.SourceHint,
		},
		{
			name:       "query hint",
			target:     "/?locale=es-MX",
			wantLang:   "es",
			wantSource: i18n.SourceHint,
		},
		{
			name:           "supported without content falls back",
			target:         "/",
			acceptLanguage: "fr",
			wantLang:       "en",
			wantSource:     i18n.SourceDefault,
		},
		{
			name:       "nothing sent",
			target:     "/",
			wantLang:   "en",
			wantSource: i18n.SourceDefault,
		},
		{
			name:           "path prefix wins over header",
			target:         "/uk/lessons/intro",
			acceptLanguage: "es",
			wantLang:       "uk",
			wantSource:     i18n.SourcePath,
		},
		{
			name:           "unavailable prefix is negotiated",
			target:         "/fr/lessons",
			acceptLanguage: "es",
			wantLang:       "es",
			wantSource:     i18n.SourceHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			if tt.clientLocales != "" {
				req.Header.Set("X-Client-Locales", tt.clientLocales)
			}

			rec := do(app, req)
			require.Equal(t, http.StatusOK, rec.Code)

			got := decode(t, rec)
			require.Equal(t, tt.wantLang, got["lang"])
			require.Equal(t, tt.wantLang, got["ctx"])
			require.Equal(t, string(tt.wantSource), got["source"])

			if tt.wantSource == i18n.SourcePath {
				require.Empty(t, rec.Header().Values("Vary"))
			} else {
				require.Equal(t, []string{"Accept-Language", "X-Client-Locales"}, rec.Header().Values("Vary"))
			}
		})
	}
}

func TestLanguageIgnorePath(t *testing.T) {
	t.Parallel()

	app := languageApp(t, middlewares.Language(newNegotiator(t), middlewares.WithLanguageIgnorePath()))

	req := httptest.NewRequest(http.MethodGet, "/uk/", nil)
	req.Header.Set("Accept-Language", "es")

	got := decode(t, do(app, req))
	require.Equal(t, "es", got["lang"])
	require.Equal(t, string(i18n.SourceHeader), got["source"])
}

func TestLanguageCustomHints(t *testing.T) {
	t.Parallel()

	app := languageApp(t, middlewares.Language(newNegotiator(t),
		middlewares.WithLanguageHints(internal.NewExtractor(internal.FromCookie("lang"))),
	))

	req := httptest.NewRequest(http.MethodGet, "/?locale=es", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "uk"})

	got := decode(t, do(app, req))
	require.Equal(t, "uk", got["lang"])
	require.Equal(t, string(i18n.SourceHint), got["source"])
}

func TestLanguageObserved(t *testing.T) {
	t.Parallel()

	var results []i18n.Result
	n := newNegotiator(t, i18n.WithObserver(func(r i18n.Result) { results = append(results, r) }))
	app := languageApp(t, middlewares.Language(n))

	do(app, httptest.NewRequest(http.MethodGet, "/es/", nil))
	require.Empty(t, results, "path-prefixed requests are not negotiated")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "uk")
	do(app, req)
	require.Equal(t, []i18n.Result{{Language: "uk", Source: i18n.SourceHeader}}, results)
}

func TestLanguageExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil),
		middlewares.LanguageExtractor(),
		middlewares.RequestIDExtractor(),
	))

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(middlewares.RequestID(), middlewares.Language(newNegotiator(t))),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				c.LogInfo("page served")
				return c.NoContent(http.StatusNoContent)
			})
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es")
	req.Header.Set("X-Request-ID", "req-42")
	do(app, req)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "page served", rec["msg"])
	require.Equal(t, "es", rec["lang"])
	require.Equal(t, "req-42", rec["request_id"])
}
