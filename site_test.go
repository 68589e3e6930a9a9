package polyglot_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot"
	"github.com/dmitrymomot/polyglot/handlers"
	"github.com/dmitrymomot/polyglot/pkg/content"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
	"github.com/dmitrymomot/polyglot/pkg/redis"
)

func testConfig(dir string) polyglot.Config {
	return polyglot.Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: 5 * time.Second,
		I18n: i18n.Config{
			SupportedLanguages: []string{"en", "es", "uk"},
			DefaultLanguage:    "en",
		},
		Content: polyglot.ContentConfig{
			Backend: polyglot.BackendFS,
			Dir:     dir,
		},
	}
}

func newSite(t *testing.T, fsys fstest.MapFS) *polyglot.Site {
	t.Helper()

	store, err := content.NewFSStore(fsys)
	require.NoError(t, err)

	site, err := polyglot.NewSite(context.Background(), testConfig("unused"),
		polyglot.WithStore(store),
		polyglot.WithSiteLogger(logger.NewNope()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = site.Close() })
	return site
}

func serve(site *polyglot.Site, target, acceptLanguage string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	site.Handler().ServeHTTP(rec, req)
	return rec
}

func languageCodes(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.LanguagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	codes := make([]string, 0, len(resp.Languages))
	for _, opt := range resp.Languages {
		codes = append(codes, opt.Code)
	}
	return codes
}

func TestSiteNegotiatesAndServes(t *testing.T) {
	t.Parallel()

	site := newSite(t, fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome")},
		"uk/index.md": {Data: []byte("# Вітаємо")},
		"de/index.md": {Data: []byte("# Willkommen")},
	})

	rec := serve(site, "/", "de-DE,uk;q=0.8,en;q=0.5")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/uk/", rec.Header().Get("Location"))

	rec = serve(site, "/uk/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "# Вітаємо", rec.Body.String())
	require.Equal(t, "uk", rec.Header().Get("Content-Language"))

	rec = serve(site, "/", "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/en/", rec.Header().Get("Location"))

	// de is not supported, es has no content.
	require.Equal(t, []string{"en", "uk"}, languageCodes(t, serve(site, "/api/languages", "")))
}

func TestSiteResolve(t *testing.T) {
	t.Parallel()

	site := newSite(t, fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome")},
		"es/index.md": {Data: []byte("# Hola")},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resolve", nil)
	req.Header.Set("Accept-Language", "fr")
	req.Header.Set("X-Client-Locales", "es-MX")
	rec := httptest.NewRecorder()
	site.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "es", resp.Language)
	require.Equal(t, i18n.SourceHint, resp.Source)

	res := site.Negotiator().Negotiate(context.Background(), "", nil)
	require.Equal(t, i18n.Result{Language: "en", Source: i18n.SourceDefault}, res)
}

func TestSiteHealthAndMetrics(t *testing.T) {
	t.Parallel()

	site := newSite(t, fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome")},
		"uk/index.md": {Data: []byte("# Вітаємо")},
	})

	require.Equal(t, http.StatusOK, serve(site, "/health/live", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
	rec := httptest.NewRecorder()
	site.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"content"`)

	serve(site, "/", "uk")
	serve(site, "/", "uk")

	rec = serve(site, polyglot.MetricsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `polyglot_negotiations_total{language="uk",source="header"} 2`)
	require.Contains(t, body, "polyglot_available_languages 2")

	// Health checks and scrapes are not negotiated.
	require.NotContains(t, body, `source="default"`)
}

// countingStore counts listings and can be switched into a failing state.
type countingStore struct {
	content.Store
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingStore) IDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	s.calls++
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Store.IDs(ctx)
}

func TestSiteReadinessUsesMemoizedListing(t *testing.T) {
	t.Parallel()

	fsStore, err := content.NewFSStore(fstest.MapFS{"en/index.md": {Data: []byte("# Welcome")}})
	require.NoError(t, err)
	store := &countingStore{Store: fsStore, err: content.ErrListFailed}

	site, err := polyglot.NewSite(context.Background(), testConfig("unused"),
		polyglot.WithStore(store),
		polyglot.WithSiteLogger(logger.NewNope()),
	)
	require.NoError(t, err)

	require.Equal(t, http.StatusServiceUnavailable, serve(site, "/health/ready", "").Code)

	store.mu.Lock()
	store.err = nil
	store.mu.Unlock()

	for range 3 {
		require.Equal(t, http.StatusOK, serve(site, "/health/ready", "").Code)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Equal(t, 2, store.calls)
}

// memoryRedis keeps string values in memory for content.CachedStore.
type memoryRedis struct {
	mu     sync.Mutex
	values map[string]string
}

func (r *memoryRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (r *memoryRedis) Set(_ context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := value.([]byte); ok {
		r.values[key] = string(b)
	}
	return goredis.NewStatusResult("OK", nil)
}

func (r *memoryRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

func TestSiteReloadInvalidatesCachedListing(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"en/index.md": {Data: []byte("# Welcome")}}
	fsStore, err := content.NewFSStore(fsys)
	require.NoError(t, err)
	rdb := &memoryRedis{values: map[string]string{}}

	site, err := polyglot.NewSite(context.Background(), testConfig("unused"),
		polyglot.WithStore(content.NewCachedStore(fsStore, rdb)),
		polyglot.WithSiteLogger(logger.NewNope()),
	)
	require.NoError(t, err)

	require.Equal(t, []string{"en"}, languageCodes(t, serve(site, "/api/languages", "")))
	require.Contains(t, rdb.values, content.DefaultCacheKey)

	fsys["uk/index.md"] = &fstest.MapFile{Data: []byte("# Вітаємо")}
	site.Reload()

	require.Equal(t, []string{"en", "uk"}, languageCodes(t, serve(site, "/api/languages", "")))
}

func TestSiteReload(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome")},
	}
	site := newSite(t, fsys)

	require.Equal(t, []string{"en"}, languageCodes(t, serve(site, "/api/languages", "")))

	fsys["es/index.md"] = &fstest.MapFile{Data: []byte("# Hola")}

	// Memoized until reloaded.
	require.Equal(t, []string{"en"}, languageCodes(t, serve(site, "/api/languages", "")))

	site.Reload()
	require.Equal(t, []string{"en", "es"}, languageCodes(t, serve(site, "/api/languages", "")))
}

func TestNewSiteInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t.TempDir())
	cfg.I18n.DefaultLanguage = "fr"

	_, err := polyglot.NewSite(context.Background(), cfg, polyglot.WithSiteLogger(logger.NewNope()))
	require.ErrorIs(t, err, polyglot.ErrInvalidConfig)
}

func TestNewSiteRedisUnavailable(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t.TempDir())
	cfg.Redis = redis.Config{
		URL:             "redis://127.0.0.1:1/0",
		ConnectAttempts: 1,
		RetryInterval:   time.Millisecond,
		Timeout:         100 * time.Millisecond,
	}

	_, err := polyglot.NewSite(context.Background(), cfg, polyglot.WithSiteLogger(logger.NewNope()))
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
}

func TestSiteRunWatchesContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", "index.md"), []byte("# Welcome"), 0o600))

	cfg := testConfig(dir)
	cfg.Content.Watch = true

	site, err := polyglot.NewSite(context.Background(), cfg, polyglot.WithSiteLogger(logger.NewNope()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- site.Run(ctx, polyglot.OnListen(func(a net.Addr) { addrCh <- a }))
	}()

	var base string
	select {
	case a := <-addrCh:
		base = "http://" + a.String()
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	list := func() string {
		resp, err := http.Get(base + "/api/languages")
		if err != nil {
			return ""
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	require.NotContains(t, list(), `"es"`)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "es"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es", "index.md"), []byte("# Hola"), 0o600))

	assert.Eventually(t, func() bool {
		return strings.Contains(list(), `"code":"es"`)
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
