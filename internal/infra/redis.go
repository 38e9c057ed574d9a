package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisStartupTimeout = 5 * time.Second

// NewRedis opens the client behind the audit queue and the health probe.
// The pool is sized so every worker goroutine can hold a blocking BRPOP
// without starving the request path.
func NewRedis(redisURL string, workers int) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	if minPool := workers + 10; opts.PoolSize < minPool {
		opts.PoolSize = minPool
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisStartupTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Int("pool_size", opts.PoolSize).Msg("redis connected")
	return rdb, nil
}
