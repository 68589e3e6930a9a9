package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// LanguageKey is the context key holding the negotiated language.
type LanguageKey struct{}

// Context provides request and response access plus helpers.
// It implements context.Context so it can be passed to blocking calls.
type Context interface {
	context.Context

	// Request returns the current request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns a chi URL parameter.
	Param(name string) string

	// Query returns a query parameter.
	Query(name string) string

	// Header returns a request header.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as JSON.
	JSON(code int, v any) error

	// String writes a plain text response.
	String(code int, s string) error

	// Stream copies r to the response with the given content type.
	Stream(code int, contentType string, r io.Reader) error

	// NoContent writes only the status code.
	NoContent(code int) error

	// Redirect sends a redirect to url.
	Redirect(code int, url string) error

	// Error builds an HTTPError for returning from a handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response has been started.
	Written() bool

	// Logger returns the app logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get reads a value from the request context.
	Get(key any) any

	// Language returns the negotiated language, or "" when the
	// language middleware did not run.
	Language() string
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
}

// NewContext wraps a request/response pair. Handlers normally receive a
// Context from the router; NewContext exists for adapters and tests.
func NewContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) Context {
	return newContext(w, r, logger)
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &requestContext{request: r, response: rw, logger: logger}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) Stream(code int, contentType string, r io.Reader) error {
	if contentType != "" {
		c.response.Header().Set("Content-Type", contentType)
	}
	c.response.WriteHeader(code)
	if c.request.Method == http.MethodHead {
		return nil
	}
	_, err := io.Copy(c.response, r)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Language() string {
	return ContextValue[string](c, LanguageKey{})
}

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

var _ Context = (*requestContext)(nil)
