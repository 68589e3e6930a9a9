package i18n

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// Preference is a single language preference parsed from an Accept-Language
// style signal.
type Preference struct {
	// Tag is the trimmed language tag as sent by the client (e.g. "en-US").
	Tag string
	// Quality is the q-value in [0, 1]. Defaults to 1.0.
	Quality float64
}

// Base returns the lowercased base subtag of the preference tag.
func (p Preference) Base() string {
	return BaseSubtag(p.Tag)
}

// ParsePreferences parses a preference signal (HTTP Accept-Language syntax)
// into entries ordered by quality, highest first. Entries with equal quality
// keep their left-to-right order from the signal.
//
// Parsing never fails: a missing, malformed or out-of-range q-value is
// treated as 1.0, and empty entries are skipped.
//
// Example: "fr;q=0.5,es;q=0.9,en;q=0.7" -> es(0.9), en(0.7), fr(0.5)
func ParsePreferences(signal string) []Preference {
	if len(signal) > maxAcceptLanguageLength {
		signal = signal[:maxAcceptLanguageLength]
	}

	var prefs []Preference

	for part := range strings.SplitSeq(signal, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tag, params, _ := strings.Cut(part, ";")
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}

		prefs = append(prefs, Preference{
			Tag:     tag,
			Quality: parseQuality(params),
		})
	}

	slices.SortStableFunc(prefs, func(a, b Preference) int {
		return cmp.Compare(b.Quality, a.Quality)
	})

	return prefs
}

// parseQuality extracts the q parameter from the ";"-separated parameter list
// of a single entry. Any failure yields 1.0.
func parseQuality(params string) float64 {
	for param := range strings.SplitSeq(params, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(q) || q < 0 || q > 1 {
			return 1.0
		}
		return q
	}
	return 1.0
}
