package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds connection settings for the listing cache.
type Config struct {
	// URL is a redis:// or rediss:// connection URL. Empty disables Redis.
	URL string `env:"URL" yaml:"url"`

	// PoolSize is the maximum number of pooled connections.
	PoolSize int `env:"POOL_SIZE" envDefault:"10" yaml:"pool_size"`

	// ConnectAttempts is how many times Open pings before giving up.
	ConnectAttempts int `env:"CONNECT_ATTEMPTS" envDefault:"3" yaml:"connect_attempts"`

	// RetryInterval is the base delay between attempts; it grows linearly.
	RetryInterval time.Duration `env:"RETRY_INTERVAL" envDefault:"2s" yaml:"retry_interval"`

	// Timeout bounds dial, read and write operations.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"3s" yaml:"timeout"`
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// Open connects to Redis, retrying while the server is unreachable.
//
// Example:
//
//	client, err := redis.Open(ctx, redis.Config{URL: "redis://localhost:6379/0"})
func Open(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	opts, err := parse(cfg)
	if err != nil {
		return nil, err
	}
	return connect(ctx, opts, cfg.ConnectAttempts, cfg.RetryInterval)
}

func parse(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(cfg.URL, "redis://") && !strings.HasPrefix(cfg.URL, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}
	return opts, nil
}

func connect(ctx context.Context, opts *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)

	var lastErr error
	for i := range attempts {
		client := redis.NewClient(opts)

		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			break
		}
		if err := wait(ctx, time.Duration(i+1)*interval); err != nil {
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
