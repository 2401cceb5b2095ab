package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Cache implements ports.Cache using Redis, so cached weather responses
// survive restarts and can be shared between assistant processes.
type Cache struct {
	client *backend.Client
	prefix string
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCachePrefix sets the key prefix for cache entries.
func WithCachePrefix(prefix string) CacheOption {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// NewCache creates a Redis cache with options.
func NewCache(address, password string, db int, opts ...CacheOption) *Cache {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewCacheFromClient(client, opts...)
}

// NewCacheFromClient creates a Redis cache from an existing client.
func NewCacheFromClient(client *backend.Client, opts ...CacheOption) *Cache {
	cache := &Cache{
		client: client,
		prefix: "ace:cache:",
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get returns the cached value; expiry is handled by Redis itself.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, true, nil
}

// Set stores the value with the given TTL (zero means no expiration).
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
