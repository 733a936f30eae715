package discount

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	redisclient "github.com/aidosmk/food-delivery-backend/pkg/redis"
)

// activeSetCache keeps the active-discount candidate list in Redis for a
// short TTL so order quoting does not hit Postgres on every request. A
// cache miss or a broken payload falls through to the database.
type activeSetCache struct {
	store redisclient.CacheStore
	ttl   time.Duration
}

func newActiveSetCache(store redisclient.CacheStore, ttl time.Duration) *activeSetCache {
	if store == nil || ttl <= 0 {
		return nil
	}
	return &activeSetCache{store: store, ttl: ttl}
}

func (c *activeSetCache) key() string {
	return c.store.CacheKey("discounts", "active")
}

// Get returns the cached candidate set, or (nil, false) on miss.
func (c *activeSetCache) Get(ctx context.Context) ([]models.Discount, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.key())
	if err != nil {
		return nil, false
	}
	var rows []models.Discount
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// Put stores the candidate set; failures are swallowed so caching stays
// best-effort.
func (c *activeSetCache) Put(ctx context.Context, rows []models.Discount) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return
	}
	_ = c.store.Set(ctx, c.key(), string(payload), c.ttl)
}

// Invalidate drops the cached set after any discount mutation.
func (c *activeSetCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.store.Del(ctx, c.key()); err != nil && !errors.Is(err, redislib.Nil) {
		return
	}
}
