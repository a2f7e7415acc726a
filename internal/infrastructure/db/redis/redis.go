// Package redis holds the Redis-backed pieces of the back office: the
// connection helper and the token denylist. Session storage for the
// console lives in internal/client/session.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

type Config struct {
	Addr string
	DB   int
	// Timeout bounds the connect-time ping and readiness checks.
	Timeout time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return pingTimeout
	}
	return c.Timeout
}

// Connect returns a client that has answered a ping. The client is closed
// again when the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: "backoffice",
	})
	if err := Ping(rdb, cfg.timeout())(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Ping returns a readiness probe for rdb.
func Ping(rdb *redis.Client, timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis %s: ping: %w", rdb.Options().Addr, err)
		}
		return nil
	}
}
