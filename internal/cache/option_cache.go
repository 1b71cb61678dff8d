package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradebook-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// OptionCache caches option listings per kind. The cache is injected into
// the option service explicitly; no package-level state, so tests can swap
// in a noop or fake without touching Redis.
type OptionCache interface {
	Get(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) ([]models.OptionItem, bool)
	Set(ctx context.Context, kind models.OptionKind, userID *uuid.UUID, items []models.OptionItem)
	Invalidate(ctx context.Context, kind models.OptionKind, userID *uuid.UUID)
}

// redisOptionCache backs the option cache with Redis
type redisOptionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisOptionCache creates a Redis-backed option cache
func NewRedisOptionCache(client *redis.Client, ttl time.Duration) OptionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisOptionCache{client: client, ttl: ttl}
}

// cacheKey builds the per-kind key. Per-user kinds (tags) carry the user id
// so one user's invalidation never evicts another's listing.
func cacheKey(kind models.OptionKind, userID *uuid.UUID) string {
	if kind.IsPerUser() && userID != nil {
		return fmt.Sprintf("options:%s:%s", kind, userID)
	}
	return fmt.Sprintf("options:%s", kind)
}

func (c *redisOptionCache) Get(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) ([]models.OptionItem, bool) {
	data, err := c.client.Get(ctx, cacheKey(kind, userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var items []models.OptionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *redisOptionCache) Set(ctx context.Context, kind models.OptionKind, userID *uuid.UUID, items []models.OptionItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	// Best effort; a write failure just means the next read misses
	c.client.Set(ctx, cacheKey(kind, userID), data, c.ttl)
}

func (c *redisOptionCache) Invalidate(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) {
	c.client.Del(ctx, cacheKey(kind, userID))
}

// noopOptionCache satisfies OptionCache without caching anything. Used when
// Redis is not configured and in tests.
type noopOptionCache struct{}

// NewNoopOptionCache creates a cache that always misses
func NewNoopOptionCache() OptionCache {
	return noopOptionCache{}
}

func (noopOptionCache) Get(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) ([]models.OptionItem, bool) {
	return nil, false
}

func (noopOptionCache) Set(ctx context.Context, kind models.OptionKind, userID *uuid.UUID, items []models.OptionItem) {
}

func (noopOptionCache) Invalidate(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) {}
