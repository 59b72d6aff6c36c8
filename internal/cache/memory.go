package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process ResolutionCache used when no Redis
// address is configured.
type MemoryCache struct {
	entries *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: gocache.New(ttl, 2*ttl),
	}
}

func (c *MemoryCache) Get(ctx context.Context, shortKey string) (Resolution, bool) {
	v, ok := c.entries.Get(shortKey)
	if !ok {
		return Resolution{}, false
	}

	res, ok := v.(Resolution)
	if !ok {
		return Resolution{}, false
	}
	return res, true
}

func (c *MemoryCache) Set(ctx context.Context, shortKey string, res Resolution) {
	c.entries.SetDefault(shortKey, res)
}
