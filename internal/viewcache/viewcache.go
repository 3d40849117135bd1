// Package viewcache memoizes derived views of the record set. Entries are
// keyed by the store version plus the canonical filter text, so any mutation
// invalidates every cached view implicitly.
package viewcache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/RahmadZikry/geodump/internal/observability"
)

// DefaultSize bounds the number of cached views.
const DefaultSize = 512

type Cache[V any] struct {
	lru *lru.Cache[uint64, V]
}

func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[uint64, V](size)
	if err != nil {
		return nil, fmt.Errorf("viewcache: %w", err)
	}
	return &Cache[V]{lru: c}, nil
}

// KeyFor hashes a store version together with a canonical filter string.
func KeyFor(version uint64, canonical string) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%016x|%s", version, canonical))
}

func (c *Cache[V]) Get(key uint64) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		observability.IncViewCacheHit()
	} else {
		observability.IncViewCacheMiss()
	}
	return v, ok
}

func (c *Cache[V]) Add(key uint64, v V) {
	c.lru.Add(key, v)
}

func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
