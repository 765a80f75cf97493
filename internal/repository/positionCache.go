package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/go-redis/redis/v8"
)

// scanCount keys fetched per SCAN round trip
const scanCount = 100

// PositionCache redis view of positions written by the matching pipeline
type PositionCache struct {
	client *redis.Client
}

// NewPositionCache creating new PositionCache
func NewPositionCache(client *redis.Client) *PositionCache {
	return &PositionCache{client: client}
}

// Keys every cached position key of the user
func (c *PositionCache) Keys(ctx context.Context, userID int64) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, model.UserPositionsPattern(userID), scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("positionCache - Keys - Scan: %w", err)
	}

	return keys, nil
}

// Values raw entries of keys in the same order, empty string for a key that vanished
func (c *PositionCache) Values(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	res, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("positionCache - Values - MGet: %w", err)
	}
	values := make([]string, len(res))
	for i, v := range res {
		if s, ok := v.(string); ok {
			values[i] = s
		}
	}

	return values, nil
}

// Get raw entry of key, empty string when absent
func (c *PositionCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("positionCache - Get - Get: %w", err)
	}

	return value, nil
}

// SetIfAbsent write entry with ttl unless the key exists; an entry written meanwhile by the
// pipeline always wins over a repair write
func (c *PositionCache) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("positionCache - SetIfAbsent - SetNX: %w", err)
	}

	return ok, nil
}
