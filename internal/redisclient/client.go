package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a key is absent
var ErrCacheMiss = errors.New("cache miss")

// Cache TTLs. Dashboards and analytics tolerate slightly stale reads; product
// detail is invalidated explicitly on every write.
const (
	ProductTTL   = 5 * time.Minute
	DashboardTTL = time.Minute
	AnalyticsTTL = 5 * time.Minute
)

// Client is a JSON read cache in front of the document store
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis cache client
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

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetJSON loads a cached value into dest
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON stores a value under key with the given TTL
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// Delete removes the given keys
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// ProductKey is the cache key for a single product document
func ProductKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// DashboardKey is the cache key for a dashboard payload
func DashboardKey(scope, id string) string {
	return fmt.Sprintf("dashboard:%s:%s", scope, id)
}

// AnalyticsKey is the cache key for an analytics payload
func AnalyticsKey(scope, id, period string) string {
	return fmt.Sprintf("analytics:%s:%s:%s", scope, id, period)
}
