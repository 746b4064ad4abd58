package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/KuzenkovAG/restaurant-menu/common/redis"
)

// Cache stores JSON-serialized entities and entity lists in Redis.
type Cache struct {
	redis *redis.Client
	log   *logger.Logger
	ttl   time.Duration
}

// New creates a new entity cache
func New(redisClient *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		redis: redisClient,
		log:   log,
		ttl:   ttl,
	}
}

// Get loads the cached value for key into dest. The first return value
// reports whether the key was present.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, found, err := c.redis.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// A decode failure means the cached payload is unusable. Drop it
		// so the next read repopulates from the store.
		c.log.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.redis.Delete(ctx, key)
		return false, nil
	}

	return true, nil
}

// Set stores value under key
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	return c.redis.Set(ctx, key, string(raw), c.ttl)
}

// Clear removes the given keys
func (c *Cache) Clear(ctx context.Context, keys ...string) error {
	return c.redis.Delete(ctx, keys...)
}

// ClearByMask removes every key starting with mask. Used for cascade
// deletes, where descendant keys are enumerable only by prefix.
func (c *Cache) ClearByMask(ctx context.Context, mask string) error {
	return c.redis.DeleteByPrefix(ctx, mask)
}
