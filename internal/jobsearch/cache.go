package jobsearch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "career-guide:jobs:"

// Cache keeps raw provider pages. Cache errors never fail a search.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// cacheKey identifies a page request. Credentials are not part of it.
func cacheKey(endpoint string, public url.Values) string {
	sum := sha256.Sum256([]byte(endpoint + "?" + public.Encode()))
	return fmt.Sprintf("%s%x", cacheKeyPrefix, sum[:16])
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Debug("page cache read failed", zap.Error(err))
		return nil, false
	}
	return body, ok
}

func (c *Client) cacheSet(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Debug("page cache write failed", zap.Error(err))
	}
}

type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache parses redisURL and verifies connectivity.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
