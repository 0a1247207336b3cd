package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	path  string
	owner string
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// Cache stores read views per path and owner in memory.
//
// Each path has a generation that is increased on invalidation. A view
// is only stored if the generation of its path did not change while it
// was loaded, so a load racing an invalidation never stores stale data.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu          sync.Mutex
	entries     map[cacheKey]cacheEntry
	generations map[string]uint64

	group singleflight.Group
}

// NewCache returns a cache that keeps views for ttl. With a ttl of 0,
// nothing is cached and every Load calls its loader.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:         ttl,
		now:         time.Now,
		entries:     make(map[cacheKey]cacheEntry),
		generations: make(map[string]uint64),
	}
}

// Invalidate drops the views of all owners for the given paths.
func (c *Cache) Invalidate(_ context.Context, paths ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, path := range unique(paths) {
		c.generations[path]++

		for key := range c.entries {
			if key.path == path {
				delete(c.entries, key)
			}
		}
	}

	return nil
}

// Len returns the number of stored views, including expired ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key cacheKey) (any, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	generation := c.generations[key.path]
	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expires) {
		return nil, generation, false
	}

	return entry.value, generation, true
}

func (c *Cache) store(key cacheKey, generation uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[key.path] != generation {
		return
	}

	c.entries[key] = cacheEntry{
		value:   value,
		expires: c.now().Add(c.ttl),
	}
}

// Load returns the view for path and owner, calling load if it is not cached.
//
// Concurrent loads of the same view share one call of load. Errors are
// never cached. load runs on a context that is not cancelled with ctx,
// but keeps its values.
func Load[T any](ctx context.Context, c *Cache, path, owner string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.ttl <= 0 {
		return load(ctx)
	}

	key := cacheKey{path: path, owner: owner}

	value, generation, ok := c.lookup(key)
	if ok {
		if v, ok := value.(T); ok {
			return v, nil
		}
	}

	// The generation is part of the key so that callers arriving after an
	// invalidation do not join a load that started before it.
	flightKey := fmt.Sprintf("%s\x00%s\x00%d", path, owner, generation)

	// The shared load is detached from the context of the caller that
	// started it. Every caller stops waiting when its own context is done.
	results := c.group.DoChan(flightKey, func() (any, error) {
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}

		c.store(key, generation, v)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-results:
		if r.Err != nil {
			return zero, r.Err
		}

		return r.Val.(T), nil
	}
}
