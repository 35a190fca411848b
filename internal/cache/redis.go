// Package cache provides the optional Redis layer for user lookups.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PoolSettings bounds the Redis connection pool.
// Zero values keep the client library defaults.
type PoolSettings struct {
	// PoolSize and MinIdleConns bound the pool.
	PoolSize     int
	MinIdleConns int

	// PoolTimeout caps how long a caller waits for a free connection.
	PoolTimeout time.Duration

	// MaxIdleTime recycles connections that sat idle for too long.
	MaxIdleTime time.Duration
}

// Cache wraps a Redis client with user-centric accessors.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, redisURL string, settings PoolSettings) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	applyPoolSettings(opt, settings)

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// applyPoolSettings copies non-zero pool bounds onto the client options.
func applyPoolSettings(opt *redis.Options, settings PoolSettings) {
	if settings.PoolSize > 0 {
		opt.PoolSize = settings.PoolSize
	}
	if settings.MinIdleConns > 0 {
		opt.MinIdleConns = settings.MinIdleConns
	}
	if settings.PoolTimeout > 0 {
		opt.PoolTimeout = settings.PoolTimeout
	}
	if settings.MaxIdleTime > 0 {
		opt.ConnMaxIdleTime = settings.MaxIdleTime
	}
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying client for test helpers.
func (c *Cache) Client() *redis.Client {
	return c.client
}
