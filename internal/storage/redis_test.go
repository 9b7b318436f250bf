package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/s33g/llm-prompter/internal/config"
)

// Note: these tests require a running Redis instance on localhost:6379
// Run: docker run -d -p 6379:6379 redis:7-alpine

func getTestClient(t *testing.T) (*Client, *redis.Client) {
	t.Helper()

	cfg := config.RedisConfig{
		Address:   "localhost:6379",
		DB:        15, // Use DB 15 for testing
		KeyPrefix: "test:",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := NewClient(ctx, cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Separate connection to inspect and clean the test database
	raw := redis.NewClient(&redis.Options{Addr: cfg.Address, DB: cfg.DB})
	t.Cleanup(func() { raw.Close() })
	raw.FlushDB(context.Background())

	return client, raw
}

func TestClient_AddUsage(t *testing.T) {
	client, raw := getTestClient(t)
	ctx := context.Background()

	counters := map[string]int64{"requests": 1, "prompt_tokens": 10}
	for i := 0; i < 2; i++ {
		if err := client.AddUsage(ctx, "2026-10-17", "m", counters, time.Hour); err != nil {
			t.Fatalf("AddUsage() error = %v", err)
		}
	}

	got, err := client.UsageCounters(ctx, "2026-10-17")
	if err != nil {
		t.Fatalf("UsageCounters() error = %v", err)
	}
	if got["m:requests"] != "2" || got["m:prompt_tokens"] != "20" {
		t.Errorf("UsageCounters() = %v, want m:requests=2 m:prompt_tokens=20", got)
	}

	ttl := raw.TTL(ctx, "test:usage:2026-10-17").Val()
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want (0, 1h]", ttl)
	}
}

func TestClient_AddUsageWithoutTTL(t *testing.T) {
	client, raw := getTestClient(t)
	ctx := context.Background()

	if err := client.AddUsage(ctx, "2026-10-17", "m", map[string]int64{"requests": 1}, 0); err != nil {
		t.Fatalf("AddUsage() error = %v", err)
	}

	// -1 means the key exists without an expiry
	if ttl := raw.TTL(ctx, "test:usage:2026-10-17").Val(); ttl != -1 {
		t.Errorf("TTL = %v, want no expiry", ttl)
	}
}

func TestClient_UsageCountersEmptyDay(t *testing.T) {
	client, _ := getTestClient(t)

	got, err := client.UsageCounters(context.Background(), "1999-01-01")
	if err != nil {
		t.Fatalf("UsageCounters() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("UsageCounters() = %v, want empty", got)
	}
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := NewClient(ctx, config.RedisConfig{Address: "127.0.0.1:1"})
	if err == nil {
		t.Error("Expected error for unreachable Redis")
	}
}
