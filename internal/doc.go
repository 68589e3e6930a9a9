// Package internal is the small HTTP framework the polyglot server is built on.
//
// Import "github.com/dmitrymomot/polyglot" instead; it re-exports the public API.
//
// # Core types
//
//   - App wires middleware, handlers, health probes and mounted handlers onto a chi router
//   - Context wraps a request and response with helpers and implements context.Context
//   - Router is what handlers use to declare routes
//   - Handler is implemented by types that declare routes
//   - HandlerFunc returns an error instead of writing failures itself
//   - Middleware wraps HandlerFuncs
//
// # Errors
//
// Handlers return errors. The app's ErrorHandler renders them; the default
// one answers with the status and message of an HTTPError found in the
// chain, or a logged 500 for anything else:
//
//	func (h *Pages) page(c Context) error {
//	    body, err := h.store.Open(c, id)
//	    if errors.Is(err, content.ErrNotFound) {
//	        return ErrNotFound("page not found", WithError(err))
//	    }
//	    ...
//	}
//
// # Running
//
// App.Run listens, serves and shuts down gracefully on SIGINT or SIGTERM.
// Background tasks share the server's lifetime:
//
//	err := app.Run(":8080",
//	    Logger(log),
//	    Background(watcher.Run),
//	    ShutdownHook(closeRedis),
//	)
package internal
