package i18n

import (
	"slices"
	"strings"
)

// BaseSubtag reduces a language tag to its lowercased base subtag:
// "EN-us" -> "en", " es " -> "es".
func BaseSubtag(tag string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(tag), "-")
	return strings.ToLower(strings.TrimSpace(base))
}

// Set is an immutable set of language codes.
type Set struct {
	codes map[string]struct{}
}

// NewSet builds a Set from the given codes. Codes are stored as given;
// empty codes are ignored.
func NewSet(codes ...string) Set {
	s := Set{codes: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		if code != "" {
			s.codes[code] = struct{}{}
		}
	}
	return s
}

// Contains reports whether code is a member of the set.
func (s Set) Contains(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of codes in the set.
func (s Set) Len() int {
	return len(s.codes)
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.codes))
	for code := range s.codes {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
