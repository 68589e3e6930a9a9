package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/internal"
	"github.com/dmitrymomot/polyglot/middlewares"
)

func requestIDApp(opts ...middlewares.RequestIDOption) http.Handler {
	return internal.New(
		internal.WithMiddleware(middlewares.RequestID(opts...)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				return c.String(http.StatusOK, middlewares.GetRequestID(c))
			})
		})),
	)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		rec := do(requestIDApp(), httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Body.String()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("propagates upstream id", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "trace-abc")
		rec := do(requestIDApp(), req)
		require.Equal(t, "trace-abc", rec.Body.String())
		require.Equal(t, "trace-abc", rec.Header().Get("X-Request-ID"))
	})

	t.Run("header order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "first")
		req.Header.Set("X-Correlation-ID", "second")
		require.Equal(t, "first", do(requestIDApp(), req).Body.String())
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{strings.Repeat("a", middlewares.MaxRequestIDLength+1), "has space", "tab\there"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", bad)
			got := do(requestIDApp(middlewares.WithRequestIDGenerator(func() string { return "generated" })), req)
			require.Equal(t, "generated", got.Body.String())
		}
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")
		req.Header.Set("X-Amzn-Trace-Id", "Root=1-abc")
		rec := do(requestIDApp(middlewares.WithRequestIDHeaders("X-Amzn-Trace-Id")), req)
		require.Equal(t, "Root=1-abc", rec.Body.String())
	})
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	t.Parallel()

	c := internal.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Empty(t, middlewares.GetRequestID(c))
}
