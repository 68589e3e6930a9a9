// Package i18n discovers which languages a content site is published in and
// negotiates the language to serve each client.
//
// The package has no knowledge of where content lives. It consumes a Lister
// that returns content item identifiers of the form "<lang>/<path>" and
// treats the first path segment as the item's language.
//
// # Available Languages
//
// A Scanner reduces the content inventory to the sorted, duplicate-free list
// of supported languages that actually have content:
//
//	scanner, err := i18n.NewScanner(store, i18n.Config{
//		SupportedLanguages: []string{"en", "es", "uk"},
//		DefaultLanguage:    "en",
//	}, i18n.WithScannerLogger(log))
//
//	langs := scanner.Languages(ctx) // ["en", "es", "uk"]
//
// Directory names that are not supported languages are dropped silently.
// When nothing qualifies the list is [default] and an error is logged.
// The first successful scan is memoized for the lifetime of the Scanner;
// construct a new Scanner to observe new content.
//
// # Negotiation
//
// A Negotiator picks one language from the Accept-Language header, then from
// platform locale hints, then falls back to the default:
//
//	n := i18n.NewNegotiator(scanner)
//
//	n.Resolve(ctx, "fr;q=0.5,es;q=0.9,en;q=0.7", nil) // "es"
//	n.Resolve(ctx, "ja-JP,ja;q=0.9", []string{"uk-UA"}) // "uk"
//	n.Resolve(ctx, "", nil)                             // "en"
//
// Tags are compared on their lowercased base subtag, so "EN-us" matches "en".
// Malformed q-values count as 1.0. Resolve never returns an error.
//
// # Language Picker
//
// Options builds picker entries with native language names:
//
//	opts := i18n.Options(langs, "es", func(lang string) string {
//		return langurl.Switch(r.URL.Path, lang, scanner.Supported().Contains)
//	})
package i18n
