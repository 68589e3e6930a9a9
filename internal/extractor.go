package internal

import "strings"

// ExtractorSource reads one candidate value from the request.
// It returns ("", false) when the value is absent.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries sources in order.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor over the given sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// ExtractAll returns the values of every source that yields one, split on
// commas and trimmed. The order follows the sources.
func (e Extractor) ExtractAll(c Context) []string {
	var out []string
	for _, src := range e.sources {
		v, ok := src(c)
		if !ok {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Header(name)
		return v, v != ""
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Query(name)
		return v, v != ""
	}
}

// FromParam reads a chi URL parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Param(name)
		return v, v != ""
	}
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		ck, err := c.Request().Cookie(name)
		if err != nil || ck.Value == "" {
			return "", false
		}
		return ck.Value, true
	}
}
