package cache

import (
	"context"
	"time"
)

// ttlCache overrides the expiry requested by callers.
type ttlCache struct {
	Cache
	ttl time.Duration
}

// WithTTL wraps c so that every Set uses ttl instead of the caller's value.
// A ttl <= 0 returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return &ttlCache{Cache: c, ttl: ttl}
}

// Set stores data with the configured ttl.
func (c *ttlCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}
