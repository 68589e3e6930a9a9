package i18n

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Lister returns the identifiers of every content item, each of the form
// "<lang>/<rest of path>".
type Lister interface {
	IDs(ctx context.Context) ([]string, error)
}

// ListerFunc adapts a plain function to the Lister interface.
type ListerFunc func(ctx context.Context) ([]string, error)

// IDs calls f(ctx).
func (f ListerFunc) IDs(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// ScanResult describes a completed scan for observers.
type ScanResult struct {
	// Err is the content store error, if the listing failed.
	Err error
	// Languages is the list handed to callers.
	Languages []string
	// Fallback is true when Languages is the [default] substitute.
	Fallback bool
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScannerLogger sets the logger used to report an empty scan.
func WithScannerLogger(l *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScanObserver registers a callback invoked after every store scan.
// Cached lookups do not trigger it.
func WithScanObserver(fn func(ScanResult)) ScannerOption {
	return func(s *Scanner) {
		s.observer = fn
	}
}

// Scanner discovers the languages content is published in.
//
// The first successful scan is memoized for the lifetime of the Scanner.
// There is no way to invalidate it: build a new Scanner to pick up new content.
type Scanner struct {
	lister      Lister
	supported   Set
	defaultLang string
	logger      *slog.Logger
	observer    func(ScanResult)

	cached atomic.Pointer[[]string]
	group  singleflight.Group
}

// NewScanner creates a Scanner over the given content lister.
func NewScanner(lister Lister, cfg Config, opts ...ScannerOption) (*Scanner, error) {
	if lister == nil {
		return nil, ErrNilLister
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scanner{
		lister:      lister,
		supported:   cfg.Supported(),
		defaultLang: cfg.DefaultLanguage,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Languages returns the sorted, duplicate-free list of supported languages
// that have at least one content item. The list is never empty: when no
// language qualifies it is [default].
//
// The returned slice is shared between callers and must not be modified.
func (s *Scanner) Languages(ctx context.Context) []string {
	if p := s.cached.Load(); p != nil {
		return *p
	}

	v, _, _ := s.group.Do("languages", func() (any, error) {
		if p := s.cached.Load(); p != nil {
			return *p, nil
		}

		langs, memoize := s.scan(ctx)
		if !memoize {
			return langs, nil
		}

		// A concurrent scan may have won; either result is identical.
		s.cached.CompareAndSwap(nil, &langs)
		return *s.cached.Load(), nil
	})

	return v.([]string)
}

// Contains reports whether lang is one of the available languages.
func (s *Scanner) Contains(ctx context.Context, lang string) bool {
	_, found := slices.BinarySearch(s.Languages(ctx), lang)
	return found
}

// Scanned reports whether a store listing has been memoized. It stays false
// while listing fails.
func (s *Scanner) Scanned() bool {
	return s.cached.Load() != nil
}

// Default returns the configured default language.
func (s *Scanner) Default() string {
	return s.defaultLang
}

// Supported returns the configured supported languages.
func (s *Scanner) Supported() Set {
	return s.supported
}

// scan reads the store once. The bool reports whether the result may be
// memoized: store failures are served as [default] but retried next time.
func (s *Scanner) scan(ctx context.Context) ([]string, bool) {
	ids, err := s.lister.IDs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list content items, using default language",
			slog.String("default_language", s.defaultLang),
			slog.Any("error", err),
		)
		langs := []string{s.defaultLang}
		s.observe(ScanResult{Languages: langs, Fallback: true, Err: err})
		return langs, false
	}

	langs := make([]string, 0, s.supported.Len())
	for _, id := range ids {
		candidate, _, _ := strings.Cut(id, "/")
		if s.supported.Contains(candidate) {
			langs = append(langs, candidate)
		}
	}
	slices.Sort(langs)
	langs = slices.Compact(langs)

	if len(langs) == 0 {
		s.logger.ErrorContext(ctx, "no content found in any supported language, using default language",
			slog.String("default_language", s.defaultLang),
			slog.Int("content_items", len(ids)),
		)
		langs = []string{s.defaultLang}
		s.observe(ScanResult{Languages: langs, Fallback: true})
		return langs, true
	}

	s.observe(ScanResult{Languages: langs})
	return slices.Clip(langs), true
}

func (s *Scanner) observe(r ScanResult) {
	if s.observer != nil {
		s.observer(r)
	}
}
