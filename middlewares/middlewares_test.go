package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/internal"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

type routes func(r internal.Router)

func (fn routes) Routes(r internal.Router) { fn(r) }

func newNegotiator(t *testing.T, opts ...i18n.NegotiatorOption) *i18n.Negotiator {
	t.Helper()

	lister := i18n.ListerFunc(func(context.Context) ([]string, error) {
		return []string{"en/index.md", "es/index.md", "uk/index.md"}, nil
	})
	scanner, err := i18n.NewScanner(lister, i18n.Config{
		SupportedLanguages: []string{"en", "es", "uk", "fr"},
		DefaultLanguage:    "en",
	})
	require.NoError(t, err)
	return i18n.NewNegotiator(scanner, opts...)
}

func do(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
