package redisclient

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:embed scripts/login_window.lua
var loginWindowScript string

type Client struct {
	rdb          *redis.Client
	windowScript *redis.Script
}

// NewClient creates a new Redis client with the rate-limit script loaded
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb:          rdb,
		windowScript: redis.NewScript(loginWindowScript),
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// RecordLoginAttempt adds one attempt to the sliding window for the address.
// Returns whether the attempt is allowed and, when blocked, how long until
// the window frees up.
func (c *Client) RecordLoginAttempt(ctx context.Context, addr string, window time.Duration, maxAttempts int) (bool, time.Duration, error) {
	key := fmt.Sprintf("login_attempts:%s", addr)
	now := time.Now()
	member := fmt.Sprintf("%d", now.UnixNano())

	result, err := c.windowScript.Run(ctx, c.rdb, []string{key},
		now.UnixMilli(), window.Milliseconds(), maxAttempts, member).Result()
	if err != nil {
		return false, 0, fmt.Errorf("login window script failed: %w", err)
	}

	vals, ok := result.([]interface{})
	if !ok || len(vals) != 2 {
		return false, 0, fmt.Errorf("unexpected script result type")
	}

	allowed, _ := vals[0].(int64)
	second, _ := vals[1].(int64)

	if allowed == 1 {
		return true, 0, nil
	}
	return false, time.Duration(second) * time.Millisecond, nil
}

// ClearLoginAttempts drops the window for an address (on successful login)
func (c *Client) ClearLoginAttempts(ctx context.Context, addr string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("login_attempts:%s", addr)).Err()
}

// CacheProduct stores a serialized product with a TTL. The cache only backs
// catalog views; the placement transaction always reads the database.
func (c *Client) CacheProduct(ctx context.Context, productID string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("product:%s", productID), payload, ttl).Err()
}

// GetCachedProduct retrieves a cached product, or nil on miss
func (c *Client) GetCachedProduct(ctx context.Context, productID string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, fmt.Sprintf("product:%s", productID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// InvalidateProduct drops a cached product
func (c *Client) InvalidateProduct(ctx context.Context, productID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("product:%s", productID)).Err()
}
