package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sandevgo/saori/internal/core"
)

const (
	defaultTTL = 60 * time.Second
	// minSweep bounds how often the janitor walks the whole map.
	minSweep = time.Minute
)

// MemoryCache is a process-local reply cache. Expired items are evicted when
// read, and keys that are never read again go on the next janitor sweep.
// Concurrent writers to one key resolve as last-write-wins.
type MemoryCache struct {
	items *gocache.Cache
	ttl   time.Duration
}

// NewMemoryCache falls back to a 60s ttl when ttl is not positive; go-cache
// would otherwise store entries that never expire.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryCache{
		items: gocache.New(ttl, max(ttl, minSweep)),
		ttl:   ttl,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (core.Reply, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		c.items.Delete(key)
		return core.Reply{}, false
	}
	reply, ok := v.(core.Reply)
	return reply, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, reply core.Reply) {
	c.items.Set(key, reply, c.ttl)
}

// Len reports stored items, including expired ones not yet read or swept.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
