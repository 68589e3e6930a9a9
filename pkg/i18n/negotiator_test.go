package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func newNegotiator(t *testing.T, opts ...i18n.NegotiatorOption) *i18n.Negotiator {
	t.Helper()
	s := newScanner(t, &countingLister{ids: []string{
		"en/index.md",
		"es/index.md",
		"uk/index.md",
		"en/lessons/basics.md",
	}})
	return i18n.NewNegotiator(s, opts...)
}

func TestNegotiatorResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		signal   string
		hints    []string
		expected string
	}{
		{name: "region tag matches base", signal: "en-US,en;q=0.9", expected: "en"},
		{name: "highest quality wins over order", signal: "fr;q=0.5,es;q=0.9,en;q=0.7", expected: "es"},
		{name: "no match falls back to default", signal: "ja-JP,ja;q=0.9", expected: "en"},
		{name: "absent signal returns default", signal: "", expected: "en"},
		{name: "case insensitive base match", signal: "EN-US,EN;q=0.9", expected: "en"},
		{name: "first available in quality order", signal: "fr,de;q=0.9,uk;q=0.8,es;q=0.7", expected: "uk"},
		{name: "equal quality keeps signal order", signal: "uk,es", expected: "uk"},
		{name: "malformed quality counts as 1", signal: "es;q=0.9,uk;q=oops", expected: "uk"},
		{name: "wildcard never matches", signal: "*,es;q=0.1", expected: "es"},
		{name: "garbage signal", signal: ";;;,,,=q", expected: "en"},
		{name: "hints used when signal empty", signal: "", hints: []string{"uk-UA", "es"}, expected: "uk"},
		{name: "hints used when signal has no match", signal: "ja", hints: []string{"fr-FR", "ES-mx"}, expected: "es"},
		{name: "signal beats hints", signal: "es", hints: []string{"uk"}, expected: "es"},
		{name: "unmatched hints fall back", signal: "", hints: []string{"fr", "", "de-DE"}, expected: "en"},
	}

	n := newNegotiator(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, n.Resolve(context.Background(), tt.signal, tt.hints))
		})
	}
}

func TestNegotiatorEmptyEqualsAbsent(t *testing.T) {
	t.Parallel()

	n := newNegotiator(t)
	require.Equal(t,
		n.Negotiate(context.Background(), "", nil),
		n.Negotiate(context.Background(), "", []string{}),
	)
}

func TestNegotiatorSource(t *testing.T) {
	t.Parallel()

	n := newNegotiator(t)
	ctx := context.Background()

	require.Equal(t, i18n.Result{Language: "es", Source: i18n.SourceHeader}, n.Negotiate(ctx, "es-ES", nil))
	require.Equal(t, i18n.Result{Language: "uk", Source: i18n.SourceHint}, n.Negotiate(ctx, "fr", []string{"uk"}))
	require.Equal(t, i18n.Result{Language: "en", Source: i18n.SourceDefault}, n.Negotiate(ctx, "fr", []string{"de"}))
}

func TestNegotiatorDefaultOutsideAvailable(t *testing.T) {
	t.Parallel()

	s := newScanner(t, &countingLister{ids: []string{"es/index.md", "uk/index.md"}})
	n := i18n.NewNegotiator(s)

	// "en" has no content but is still returned as the default.
	require.Equal(t, "en", n.Resolve(context.Background(), "en-US", nil))
	require.Equal(t, "es", n.Resolve(context.Background(), "en-US,es;q=0.1", nil))
}

func TestNegotiatorObserver(t *testing.T) {
	t.Parallel()

	var got []i18n.Result
	n := newNegotiator(t, i18n.WithObserver(func(r i18n.Result) {
		got = append(got, r)
	}))

	n.Resolve(context.Background(), "uk", nil)
	n.Resolve(context.Background(), "", nil)

	require.Equal(t, []i18n.Result{
		{Language: "uk", Source: i18n.SourceHeader},
		{Language: "en", Source: i18n.SourceDefault},
	}, got)
}
