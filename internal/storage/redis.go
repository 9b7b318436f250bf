// Package storage holds the Redis-backed usage ledger. Each day is one hash
// keyed by date, with one "<model>:<counter>" field per counter.
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/s33g/llm-prompter/internal/config"
)

// Client reads and writes the ledger
type Client struct {
	rdb  *redis.Client
	keys *Keys
}

// NewClient connects to Redis and checks the connection with a ping. The
// password is read from the environment variable named by cfg.PasswordEnv.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts := &redis.Options{
		Addr: cfg.Address,
		DB:   cfg.DB,
	}
	if cfg.PasswordEnv != "" {
		opts.Password = os.Getenv(cfg.PasswordEnv)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Client{
		rdb:  rdb,
		keys: NewKeys(cfg.KeyPrefix),
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// AddUsage increments the counters of model on date in one round trip and
// refreshes the day's expiry to ttl. A ttl of zero leaves the expiry alone.
func (c *Client) AddUsage(ctx context.Context, date, model string, counters map[string]int64, ttl time.Duration) error {
	if len(counters) == 0 {
		return nil
	}
	key := c.keys.Usage(date)

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for counter, delta := range counters {
			pipe.HIncrBy(ctx, key, c.keys.UsageField(model, counter), delta)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add usage for %s: %w", date, err)
	}

	return nil
}

// UsageCounters returns every counter field recorded on date. A day with no
// usage yields an empty map.
func (c *Client) UsageCounters(ctx context.Context, date string) (map[string]string, error) {
	data, err := c.rdb.HGetAll(ctx, c.keys.Usage(date)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage for %s: %w", date, err)
	}
	return data, nil
}
