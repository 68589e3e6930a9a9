package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func TestParsePreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		signal   string
		expected []i18n.Preference
	}{
		{
			name:     "empty signal",
			signal:   "",
			expected: nil,
		},
		{
			name:   "single tag defaults to quality 1",
			signal: "en-US",
			expected: []i18n.Preference{
				{Tag: "en-US", Quality: 1},
			},
		},
		{
			name:   "sorted by quality descending",
			signal: "fr;q=0.5,es;q=0.9,en;q=0.7",
			expected: []i18n.Preference{
				{Tag: "es", Quality: 0.9},
				{Tag: "en", Quality: 0.7},
				{Tag: "fr", Quality: 0.5},
			},
		},
		{
			name:   "equal quality keeps signal order",
			signal: "uk;q=0.8,de,es;q=0.8,pl",
			expected: []i18n.Preference{
				{Tag: "de", Quality: 1},
				{Tag: "pl", Quality: 1},
				{Tag: "uk", Quality: 0.8},
				{Tag: "es", Quality: 0.8},
			},
		},
		{
			name:   "malformed quality treated as 1",
			signal: "en;q=invalid,pl;q=0.5",
			expected: []i18n.Preference{
				{Tag: "en", Quality: 1},
				{Tag: "pl", Quality: 0.5},
			},
		},
		{
			name:   "out of range and NaN quality treated as 1",
			signal: "de;q=0.1,en;q=2.5,pl;q=-0.5,uk;q=NaN",
			expected: []i18n.Preference{
				{Tag: "en", Quality: 1},
				{Tag: "pl", Quality: 1},
				{Tag: "uk", Quality: 1},
				{Tag: "de", Quality: 0.1},
			},
		},
		{
			name:   "parameter without q is ignored",
			signal: "en;level=1,es;q=0.3",
			expected: []i18n.Preference{
				{Tag: "en", Quality: 1},
				{Tag: "es", Quality: 0.3},
			},
		},
		{
			name:   "whitespace and empty entries",
			signal: " en , , pl ; q=0.9 ,;q=0.2, de ; Q=0.8 ",
			expected: []i18n.Preference{
				{Tag: "en", Quality: 1},
				{Tag: "pl", Quality: 0.9},
				{Tag: "de", Quality: 0.8},
			},
		},
		{
			name:   "duplicate tags keep highest first",
			signal: "en;q=0.2,es;q=0.5,en;q=0.9",
			expected: []i18n.Preference{
				{Tag: "en", Quality: 0.9},
				{Tag: "es", Quality: 0.5},
				{Tag: "en", Quality: 0.2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, i18n.ParsePreferences(tt.signal))
		})
	}
}

func TestParsePreferencesOversizedSignal(t *testing.T) {
	t.Parallel()

	prefs := i18n.ParsePreferences(strings.Repeat("en,", 2000) + "pl")
	require.NotEmpty(t, prefs)
	for _, p := range prefs {
		require.NotEqual(t, "pl", p.Tag, "entries past the length limit must be ignored")
	}
}

func TestPreferenceBase(t *testing.T) {
	t.Parallel()

	require.Equal(t, "en", i18n.Preference{Tag: "EN-us"}.Base())
	require.Equal(t, "zh", i18n.Preference{Tag: "zh-Hant-TW"}.Base())
	require.Equal(t, "*", i18n.Preference{Tag: "*"}.Base())
}

func TestBaseSubtag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"en":        "en",
		"en-US":     "en",
		"EN-us":     "en",
		" Uk-UA ":   "uk",
		"":          "",
		"-US":       "",
		"es-419":    "es",
		"sr-Latn-R": "sr",
	}

	for in, want := range tests {
		require.Equal(t, want, i18n.BaseSubtag(in), "input %q", in)
	}
}
