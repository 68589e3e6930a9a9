package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Defaults for CachedStore.
const (
	DefaultCacheKey = "polyglot:content:ids"
	DefaultCacheTTL = 5 * time.Minute
)

// RedisClient is the subset of redis.UniversalClient used by CachedStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Invalidator is implemented by stores that keep a listing cache.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// CachedOption configures a CachedStore.
type CachedOption func(*CachedStore)

// WithCacheKey sets the Redis key holding the id listing.
func WithCacheKey(key string) CachedOption {
	return func(s *CachedStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCacheTTL sets how long a listing stays in Redis.
// Zero or negative means the listing never expires.
func WithCacheTTL(ttl time.Duration) CachedOption {
	return func(s *CachedStore) {
		s.ttl = ttl
	}
}

// WithCacheLogger sets the logger used to report Redis failures.
func WithCacheLogger(l *slog.Logger) CachedOption {
	return func(s *CachedStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// CachedStore shares the id listing of a slower store (typically S3)
// between server instances through Redis. Redis failures are logged and
// the wrapped store is used directly.
type CachedStore struct {
	next   Store
	client RedisClient
	logger *slog.Logger
	key    string
	ttl    time.Duration
}

// NewCachedStore wraps next with a Redis listing cache.
func NewCachedStore(next Store, client RedisClient, opts ...CachedOption) *CachedStore {
	s := &CachedStore{
		next:   next,
		client: client,
		logger: slog.New(slog.DiscardHandler),
		key:    DefaultCacheKey,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IDs returns the cached listing, refreshing it from the wrapped store on a miss.
func (s *CachedStore) IDs(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	switch {
	case err == nil:
		var ids []string
		if err := json.Unmarshal(data, &ids); err == nil {
			return ids, nil
		}
		s.logger.WarnContext(ctx, "discarding corrupt content listing cache", slog.String("key", s.key))
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "content listing cache unavailable",
			slog.String("key", s.key),
			slog.Any("error", err),
		)
	}

	ids, err := s.next.IDs(ctx)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(ids)
	if err != nil {
		return ids, nil
	}

	// Redis interprets 0 as no expiration.
	if err := s.client.Set(ctx, s.key, data, max(s.ttl, 0)).Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to cache content listing",
			slog.String("key", s.key),
			slog.Any("error", err),
		)
	}

	return ids, nil
}

// Invalidate drops the shared listing so the next IDs call reads the
// wrapped store again.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("content: invalidate listing cache: %w", err)
	}
	return nil
}

// Open delegates to the wrapped store.
func (s *CachedStore) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	return s.next.Open(ctx, id)
}

var (
	_ Store       = (*CachedStore)(nil)
	_ Invalidator = (*CachedStore)(nil)
)
