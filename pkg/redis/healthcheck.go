package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/polyglot/pkg/health"
)

// Healthcheck returns a readiness probe pinging client.
//
//	internal.WithReadinessCheck("redis", redis.Healthcheck(client))
func Healthcheck(client redis.UniversalClient) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
