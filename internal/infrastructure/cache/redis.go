package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ArticleRater/internal/config"
	"ArticleRater/internal/ports"
)

// Redis backs the result cache with a Redis instance so concurrent
// rater replicas share memoized fetches and evaluations.
type Redis struct {
	client     *redis.Client
	defaultTTL time.Duration
}

var _ ports.ResultCache = (*Redis)(nil)

// NewRedis connects lazily; the first command dials.
func NewRedis(cfg config.RedisConfig, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}

	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		defaultTTL: ttl,
	}
}

// Get fetches the value for key; a missing key is not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

// Set writes value under key with the given ttl (cache default when
// non-positive).
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
