package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    store content.Store
//	}
//
//	func (h *PagesHandler) Routes(r Router) {
//	    r.GET("/{lang}/*", h.page)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// A non-nil error is passed to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
//
// Example:
//
//	func NoStore(next HandlerFunc) HandlerFunc {
//	    return func(c Context) error {
//	        c.SetHeader("Cache-Control", "no-store")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
