package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/polyglot/pkg/health"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires middleware and handlers onto a chi router.
// It is immutable after New returns.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	middlewares             []Middleware
	handlers                []Handler
	mounts                  []mount
}

type mount struct {
	handler http.Handler
	pattern string
}

// New creates an application from the given options.
//
// Example:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(handlers.NewPages(store, scanner)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errorHandler == nil {
		a.errorHandler = defaultErrorHandler
	}

	a.setupRoutes()
	return a
}

// ServeHTTP dispatches to the router.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// Run serves the app on addr and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.Background(watcher.Run),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		background:      cfg.background,
		baseCtx:         cfg.baseCtx,
		onListen:        cfg.onListen,
	})
}

func (a *App) setupRoutes() {
	chain := make(chi.Middlewares, 0, len(a.middlewares))
	for _, mw := range a.middlewares {
		chain = append(chain, a.adaptMiddleware(mw))
	}

	notFound := a.notFoundHandler
	if notFound == nil {
		notFound = func(Context) error { return ErrNotFound("") }
	}
	a.router.NotFound(chain.Handler(a.wrapHandler(notFound)).ServeHTTP)

	methodNotAllowed := a.methodNotAllowedHandler
	if methodNotAllowed == nil {
		methodNotAllowed = func(Context) error { return ErrMethodNotAllowed("") }
	}
	a.router.MethodNotAllowed(chain.Handler(a.wrapHandler(methodNotAllowed)).ServeHTTP)

	// Mounts and health endpoints sit outside the middleware chain.
	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	if a.healthConfig != nil {
		opts := []health.Option{health.WithLogger(a.logger), health.WithTimeout(a.healthConfig.timeout)}
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, opts...))
	}

	a.router.Group(func(g chi.Router) {
		g.Use(chain...)
		r := &routerAdapter{router: g, app: a}
		for _, h := range a.handlers {
			h.Routes(r)
		}
	})
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders err unless the response has already started.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("handler error after response started", slog.Any("error", err))
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.Any("error", herr))
		http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// defaultErrorHandler responds with the HTTPError's status and message.
// Any other error becomes a logged 500 with a generic message.
func defaultErrorHandler(c Context, err error) error {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = ErrInternal("", WithError(err))
	}
	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Int("status", httpErr.Code), slog.Any("error", err))
	}
	return c.String(httpErr.Code, httpErr.Message)
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessTimeout bounds the readiness checks.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
// Example:
//
//	internal.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if fn == nil {
			return
		}
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
