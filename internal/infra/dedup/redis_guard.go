package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key TTL comfortably outlives a day of reruns without accumulating keys.
const keyTTL = 48 * time.Hour

// RedisGuard claims (day, offset, client) reminder slots via SETNX so that
// multiple scheduler instances behind a load balancer do not send the same
// reminder twice.
type RedisGuard struct {
	client *redis.Client
}

// NewRedisGuard connects to Redis and verifies connectivity.
func NewRedisGuard(ctx context.Context, redisURL string) (*RedisGuard, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisGuard{client: client}, nil
}

// NewRedisGuardFromClient wraps an existing client; used by tests.
func NewRedisGuardFromClient(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

// Acquire returns true when this call claimed the slot, false when another
// instance already holds it.
func (g *RedisGuard) Acquire(ctx context.Context, day time.Time, offset int, clientID int64) (bool, error) {
	key := fmt.Sprintf("reminder:%s:%d:%d", day.Format("2006-01-02"), offset, clientID)
	ok, err := g.client.SetNX(ctx, key, 1, keyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claiming reminder slot %s: %w", key, err)
	}
	return ok, nil
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}
