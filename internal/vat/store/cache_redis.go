package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vatchecker/internal/vat/models"
)

const outcomeKeyPrefix = "vatchecker:outcome:"

// RedisCache is the transient tier shared by every replica. Registry answers
// expire after the cache TTL, which is set to the freshness window.
// Offline-policy answers expire after policyTTL so one replica's outage
// guess does not hold every replica for a day.
type RedisCache struct {
	client    *redis.Client
	cacheTTL  time.Duration
	policyTTL time.Duration
}

// NewRedisCache creates a Redis-backed transient cache. A zero policyTTL
// means DefaultPolicyTTL.
func NewRedisCache(client *redis.Client, cacheTTL, policyTTL time.Duration) *RedisCache {
	if policyTTL <= 0 {
		policyTTL = DefaultPolicyTTL
	}
	return &RedisCache{client: client, cacheTTL: cacheTTL, policyTTL: policyTTL}
}

func outcomeKey(key models.CacheKey) string {
	return outcomeKeyPrefix + key.String()
}

// Get returns ErrNotFound when the key is absent or expired.
func (c *RedisCache) Get(ctx context.Context, key models.CacheKey) (*models.Outcome, error) {
	raw, err := c.client.Get(ctx, outcomeKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cached outcome: %w", err)
	}
	var out models.Outcome
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode cached outcome: %w", err)
	}
	return &out, nil
}

// Put stores outcome with the TTL for its source. Last write wins.
func (c *RedisCache) Put(ctx context.Context, key models.CacheKey, outcome models.Outcome) error {
	raw, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if err := c.client.Set(ctx, outcomeKey(key), raw, ttlFor(outcome, c.cacheTTL, c.policyTTL)).Err(); err != nil {
		return fmt.Errorf("set cached outcome: %w", err)
	}
	return nil
}
