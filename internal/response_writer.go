package internal

import (
	"net/http"
	"sync"
)

// ResponseWriter records the status and size of a response and whether it
// has been started.
type ResponseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	status  int
	size    int64
	written bool
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends the status code once; later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if !w.start(code) {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write starts the response with 200 when no status was sent.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.start(http.StatusOK)

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// start records the status and reports whether this call started the response.
func (w *ResponseWriter) start(code int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return false
	}
	w.written = true
	w.status = code
	return true
}

// Status returns the status code sent, or 200 before anything was written.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the response has been started.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
