// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"brand-audit/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client used by the draft store.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a Redis client. It does not dial; call Ping to check the
// connection.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return &RedisClient{Client: rdb}
}

// Connect creates a client and pings it within timeout.
func Connect(ctx context.Context, cfg config.RedisConfig, timeout time.Duration) (*RedisClient, error) {
	c := NewRedis(cfg)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.Ping(pingCtx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Address, err)
	}
	return c, nil
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Cmdable exposes the command interface so callers can be tested against
// redismock or miniredis.
func (c *RedisClient) Cmdable() redis.Cmdable {
	return c.Client
}
