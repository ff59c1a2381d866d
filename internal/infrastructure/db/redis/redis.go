package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config holds the connection settings of the Redis backend.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Open returns a client without contacting the server. The client dials
// lazily and reconnects on its own.
func Open(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout(cfg),
	})
}

// Connect opens a client and pings it before returning.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := Open(cfg)

	pingCtx, cancel := context.WithTimeout(ctx, timeout(cfg))
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func timeout(cfg Config) time.Duration {
	if cfg.Timeout <= 0 {
		return connectTimeout
	}
	return cfg.Timeout
}
