// Package langurl builds and parses language-prefixed site paths such as
// "/es/lessons/intro/".
//
// All functions sanitize their input: backslashes are treated as separators,
// empty, "." and ".." segments are dropped and control characters removed,
// so user-supplied paths can never climb out of the language root.
package langurl

import (
	"strings"
	"unicode"
)

// Build returns the absolute path of p under the language prefix.
// A trailing slash on p is preserved.
//
//	Build("en", "lessons/intro")    // "/en/lessons/intro"
//	Build("es", "/../../etc/passwd") // "/es/etc/passwd"
//	Build("uk", "")                 // "/uk/"
func Build(lang, p string) string {
	rest := Clean(p)
	if rest == "/" {
		return "/" + lang + "/"
	}
	return "/" + lang + rest
}

// Split separates a leading language segment from the rest of the path.
// ok is false when the first segment is not accepted by isLang; rest is then
// the whole cleaned path. rest always starts with "/".
//
//	Split("/es/lessons/", isLang) // "es", "/lessons/", true
//	Split("/lessons/", isLang)    // "", "/lessons/", false
func Split(p string, isLang func(string) bool) (lang, rest string, ok bool) {
	clean := Clean(p)
	first, tail, _ := strings.Cut(strings.TrimPrefix(clean, "/"), "/")
	if first == "" || isLang == nil || !isLang(first) {
		return "", clean, false
	}
	if tail == "" {
		return first, "/", true
	}
	return first, "/" + tail, true
}

// Switch returns the same page under another language, replacing an
// existing language prefix or adding one.
//
//	Switch("/en/lessons/intro", "uk", isLang) // "/uk/lessons/intro"
//	Switch("/lessons/intro", "uk", isLang)    // "/uk/lessons/intro"
func Switch(p, lang string, isLang func(string) bool) string {
	_, rest, _ := Split(p, isLang)
	return Build(lang, rest)
}

// Clean normalizes a path to a rooted, traversal-free form.
// A trailing slash on a non-root path is preserved.
func Clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, p)

	trailing := strings.HasSuffix(p, "/")

	segments := make([]string, 0, strings.Count(p, "/")+1)
	for seg := range strings.SplitSeq(p, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return "/"
	}

	out := "/" + strings.Join(segments, "/")
	if trailing {
		out += "/"
	}
	return out
}
