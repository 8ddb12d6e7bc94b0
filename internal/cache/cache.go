package cache

import (
	"context"
	"log/slog"
	"time"
)

// TTL applies to every stored summary.
const TTL = 3600 * time.Second

// Store is a key-value backend with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Cache wraps an optional Store. A nil store disables caching, and backend
// errors are logged and never returned.
type Cache struct {
	store Store
	log   *slog.Logger
}

// New falls back to slog.Default() when log is nil.
func New(store Store, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}

	return &Cache{store: store, log: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.store != nil
}

func (c *Cache) Lookup(ctx context.Context, key string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}

	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to read from cache so it is treated as a miss",
			"error", err,
			"cacheKey", key)

		return "", false
	}

	if !ok || value == "" {
		return "", false
	}

	return value, true
}

func (c *Cache) Store(ctx context.Context, key string, value string) {
	if !c.Enabled() || value == "" {
		return
	}

	if err := c.store.Set(ctx, key, value, TTL); err != nil {
		c.log.WarnContext(ctx, "Failed to write to cache",
			"error", err,
			"cacheKey", key,
			"ttlSeconds", TTL.Seconds())
	}
}
