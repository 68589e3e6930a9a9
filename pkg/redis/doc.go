// Package redis opens the Redis connection backing the shared content
// listing cache.
//
// Open parses a redis:// or rediss:// URL, applies pool and timeout settings
// from Config and pings the server, retrying with a linearly growing delay
// so the service tolerates Redis starting after it.
//
//	client, err := redis.Open(ctx, redis.Config{
//		URL:             "redis://localhost:6379/0",
//		ConnectAttempts: 5,
//		RetryInterval:   time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck adapts the client to the readiness probe.
package redis
