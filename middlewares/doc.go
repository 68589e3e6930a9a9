// Package middlewares provides the HTTP middleware of the polyglot server.
//
//   - RequestID assigns or propagates a request ID (X-Request-ID)
//   - Recover turns panics into logged 500 responses
//   - Language picks the language to serve for each request
//
// Typical wiring:
//
//	app := internal.New(
//		internal.WithLogger(log),
//		internal.WithMiddleware(
//			middlewares.RequestID(),
//			middlewares.Recover(),
//			middlewares.Language(negotiator),
//		),
//	)
//
// RequestIDExtractor and LanguageExtractor feed the logger so that every
// record logged with the request context carries "request_id" and "lang":
//
//	log := logger.New(cfg.Log,
//		middlewares.RequestIDExtractor(),
//		middlewares.LanguageExtractor(),
//	)
//
// # Language selection
//
// A request for /es/lessons/intro is served in Spanish when "es" is
// available; no negotiation happens. Any other request is negotiated from
// Accept-Language first, then platform hints, then the default language:
//
//	GET /
//	Accept-Language: ja-JP,ja;q=0.9
//	X-Client-Locales: uk-UA, en-US
//
// resolves to "uk" when Japanese is unavailable. Handlers read the result
// with GetLanguage or Context.Language.
package middlewares
