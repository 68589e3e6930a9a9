package i18n

import (
	"context"
	"slices"
)

// Source identifies which signal produced a negotiated language.
type Source string

const (
	// SourceHeader means the preference signal (Accept-Language) matched.
	SourceHeader Source = "header"
	// SourceHint means a platform locale hint matched.
	SourceHint Source = "hint"
	// SourceDefault means nothing matched and the default language was used.
	SourceDefault Source = "default"
	// SourcePath means the request URL already named an available language
	// and no negotiation took place.
	SourcePath Source = "path"
)

// LanguageSource provides the available languages and the default language.
// *Scanner implements it.
type LanguageSource interface {
	Languages(ctx context.Context) []string
	Default() string
}

// Result is the outcome of a negotiation.
type Result struct {
	Language string
	Source   Source
}

// NegotiatorOption configures a Negotiator.
type NegotiatorOption func(*Negotiator)

// WithObserver registers a callback invoked with every negotiation result.
func WithObserver(fn func(Result)) NegotiatorOption {
	return func(n *Negotiator) {
		n.observer = fn
	}
}

// Negotiator picks exactly one available language for a client.
// It is safe for concurrent use.
type Negotiator struct {
	source   LanguageSource
	observer func(Result)
}

// NewNegotiator creates a Negotiator reading available languages from source.
func NewNegotiator(source LanguageSource, opts ...NegotiatorOption) *Negotiator {
	n := &Negotiator{source: source}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Available returns the languages negotiation chooses from.
func (n *Negotiator) Available(ctx context.Context) []string {
	return n.source.Languages(ctx)
}

// Default returns the fallback language.
func (n *Negotiator) Default() string {
	return n.source.Default()
}

// Resolve returns the best available language for the given preference
// signal (Accept-Language header value, may be empty) and platform locale
// hints (most preferred first, may be nil). It never fails: when nothing
// matches it returns the default language.
func (n *Negotiator) Resolve(ctx context.Context, signal string, hints []string) string {
	return n.Negotiate(ctx, signal, hints).Language
}

// Negotiate is Resolve that also reports which signal decided the result.
//
// Order: preference entries by quality (stable), then hints in order, then
// the default language. Matching uses the lowercased base subtag of each tag.
func (n *Negotiator) Negotiate(ctx context.Context, signal string, hints []string) Result {
	res := n.negotiate(ctx, signal, hints)
	if n.observer != nil {
		n.observer(res)
	}
	return res
}

func (n *Negotiator) negotiate(ctx context.Context, signal string, hints []string) Result {
	available := n.source.Languages(ctx)

	if signal != "" {
		for _, pref := range ParsePreferences(signal) {
			if base := pref.Base(); contains(available, base) {
				return Result{Language: base, Source: SourceHeader}
			}
		}
	}

	for _, hint := range hints {
		if base := BaseSubtag(hint); contains(available, base) {
			return Result{Language: base, Source: SourceHint}
		}
	}

	return Result{Language: n.source.Default(), Source: SourceDefault}
}

func contains(available []string, code string) bool {
	return code != "" && slices.Contains(available, code)
}
