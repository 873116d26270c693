package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Cache is a size-bounded TTL cache with single-flight fetching: for any
// key there is at most one fetch in flight, and concurrent callers for the
// same key await its result instead of fetching again.
type Cache[V any] struct {
	entries *expirable.LRU[string, V]
	group   singleflight.Group
	maxSize int
	ttl     time.Duration
}

type Stats struct {
	Size       int `json:"size"`
	MaxSize    int `json:"maxsize"`
	TTLSeconds int `json:"ttl_seconds"`
}

func New[V any](maxSize int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: expirable.NewLRU[string, V](maxSize, nil, ttl),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// GetOrFetch returns the cached value for key, or runs fetch and caches its
// result. With force set the cache read is skipped, but the fetch is still
// coalesced with any in-flight fetch for the same key and written through on
// success. Fetch errors are never cached.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, force bool, fetch func(ctx context.Context) (V, error)) (V, error) {
	if !force {
		if value, ok := c.entries.Get(key); ok {
			return value, nil
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.entries.Add(key, value)
		return value, nil
	})

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}

		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.entries.Get(key)
}

func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

func (c *Cache[V]) Stats() Stats {
	return Stats{
		Size:       c.entries.Len(),
		MaxSize:    c.maxSize,
		TTLSeconds: int(c.ttl.Seconds()),
	}
}
