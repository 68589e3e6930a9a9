package polyglot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/polyglot/handlers"
	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/content"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
	"github.com/dmitrymomot/polyglot/pkg/metrics"
	"github.com/dmitrymomot/polyglot/pkg/redis"
)

// MetricsPath is where Prometheus metrics are served.
const MetricsPath = "/metrics"

// SiteOption configures a Site.
type SiteOption func(*siteOptions)

type siteOptions struct {
	logger *slog.Logger
	store  content.Store
}

// WithSiteLogger replaces the logger built from Config.Log.
func WithSiteLogger(l *slog.Logger) SiteOption {
	return func(o *siteOptions) {
		o.logger = l
	}
}

// WithStore serves content from store instead of the configured backend.
// Redis caching is not applied to an injected store; Reload still
// invalidates it when it implements content.Invalidator.
func WithStore(store content.Store) SiteOption {
	return func(o *siteOptions) {
		o.store = store
	}
}

// Site is a fully wired multilingual content server.
type Site struct {
	cfg        Config
	logger     *slog.Logger
	store      content.Store
	redis      goredis.UniversalClient
	languages  *liveLanguages
	negotiator *i18n.Negotiator
	metrics    *metrics.Metrics
	app        *App
}

// NewSite builds the content store, language discovery, negotiation and HTTP
// application described by cfg. It connects to Redis when Config.Redis.URL
// is set.
func NewSite(ctx context.Context, cfg Config, opts ...SiteOption) (*Site, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &siteOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(cfg.Log,
			middlewares.RequestIDExtractor(),
			middlewares.LanguageExtractor(),
		)
	}

	s := &Site{
		cfg:     cfg,
		logger:  o.logger,
		store:   o.store,
		metrics: metrics.New(),
	}

	if s.store == nil {
		if err := s.openStore(ctx); err != nil {
			return nil, err
		}
	}

	languages, err := newLiveLanguages(func() (*i18n.Scanner, error) {
		return i18n.NewScanner(s.store, cfg.I18n,
			i18n.WithScannerLogger(s.logger),
			i18n.WithScanObserver(s.metrics.ObserveScan),
		)
	}, s.logger)
	if err != nil {
		_ = s.Close()
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	s.languages = languages
	s.negotiator = i18n.NewNegotiator(languages, i18n.WithObserver(s.metrics.ObserveNegotiation))

	s.app = New(s.appOptions()...)
	return s, nil
}

func (s *Site) openStore(ctx context.Context) error {
	var (
		store content.Store
		err   error
	)
	switch strings.ToLower(s.cfg.Content.Backend) {
	case BackendS3:
		store, err = content.NewS3Store(s.cfg.Content.S3,
			content.WithS3Exclude(s.cfg.Content.Exclude...),
		)
	default:
		store, err = content.NewFSStore(os.DirFS(s.cfg.Content.Dir),
			content.WithExclude(s.cfg.Content.Exclude...),
		)
	}
	if err != nil {
		return fmt.Errorf("polyglot: content store: %w", err)
	}

	if s.cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, s.cfg.Redis)
		if err != nil {
			return fmt.Errorf("polyglot: %w", err)
		}
		s.redis = client
		store = content.NewCachedStore(store, client,
			content.WithCacheTTL(s.cfg.Content.CacheTTL),
			content.WithCacheLogger(s.logger),
		)
	}

	s.store = store
	return nil
}

func (s *Site) appOptions() []Option {
	checks := []HealthOption{
		WithReadinessCheck("content", s.languages.Ready),
	}
	if s.redis != nil {
		checks = append(checks, WithReadinessCheck("redis", redis.Healthcheck(s.redis)))
	}

	return []Option{
		WithLogger(s.logger),
		WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Language(s.negotiator),
		),
		WithMount(MetricsPath, s.metrics.Handler()),
		WithHealthChecks(checks...),
		WithHandlers(
			handlers.NewLanguages(s.negotiator),
			handlers.NewPages(s.store, s.languages),
		),
	}
}

// Handler returns the HTTP handler serving the site.
func (s *Site) Handler() http.Handler {
	return s.app
}

// Negotiator returns the site's language negotiator.
func (s *Site) Negotiator() *i18n.Negotiator {
	return s.negotiator
}

// Metrics returns the site's metrics.
func (s *Site) Metrics() *metrics.Metrics {
	return s.metrics
}

// Reload drops the memoized available languages, and the shared Redis
// listing when the store keeps one.
func (s *Site) Reload() {
	if inv, ok := s.store.(content.Invalidator); ok {
		if err := inv.Invalidate(context.Background()); err != nil {
			s.logger.Warn("failed to invalidate content listing cache", slog.Any("error", err))
		}
	}
	s.languages.Reload()
}

// Run serves the site on Config.Addr until ctx is cancelled or the process
// receives SIGINT or SIGTERM. With Config.Content.Watch set, file changes
// under the content directory trigger Reload.
func (s *Site) Run(ctx context.Context, opts ...RunOption) error {
	runOpts := []RunOption{
		Logger(s.logger),
		ShutdownTimeout(s.cfg.ShutdownTimeout),
		WithContext(ctx),
		ShutdownHook(func(context.Context) error { return s.Close() }),
	}

	if s.cfg.Content.Watch {
		w, err := content.NewWatcher(s.cfg.Content.Dir, content.WithWatcherLogger(s.logger))
		if err != nil {
			_ = s.Close()
			return fmt.Errorf("polyglot: watch content: %w", err)
		}
		runOpts = append(runOpts, Background(func(ctx context.Context) error {
			return w.Run(ctx, s.Reload)
		}))
	}

	return s.app.Run(s.cfg.Addr, append(runOpts, opts...)...)
}

// Close releases the Redis connection, if any.
func (s *Site) Close() error {
	if s.redis == nil {
		return nil
	}
	err := s.redis.Close()
	s.redis = nil
	if err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
