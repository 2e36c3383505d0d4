package market

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type CacheConfig struct {
	// defaults to 10. long enough to absorb a burst of identical
	// requests, short enough that prices do not go stale.
	TTLSeconds int `json:"ttl_seconds"`
	// defaults to 1024 distinct keys
	Size int `json:"size"`
}

// ListingCache memoizes resolved listings per (collection, filters,
// limit) for a short window. entries are immutable snapshots, they are
// overwritten wholesale and never mutated in place.
type ListingCache struct {
	lru *expirable.LRU[string, []Listing]
}

func NewListingCache(cfg CacheConfig) *ListingCache {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	size := cfg.Size
	if size <= 0 {
		size = 1024
	}
	return &ListingCache{lru: expirable.NewLRU[string, []Listing](size, nil, ttl)}
}

// Key is deterministic for identical inputs; EncodeAttrs already fixes
// the attribute order.
func Key(collection string, f Filter, limit int) string {
	return fmt.Sprintf("%s|%s|%d", collection, EncodeAttrs(f), limit)
}

// GetOrCompute returns the live cached value for key, or stores and
// returns compute's result. empty results are cached on purpose,
// re-resolving a collection that genuinely has no matching listings
// every few seconds is exactly the hammering this cache exists to
// absorb. two concurrent misses may both run compute; the second write
// wins, which is harmless since compute is idempotent.
func (c *ListingCache) GetOrCompute(ctx context.Context, key string, compute func(context.Context) []Listing) []Listing {
	if cached, hit := c.lru.Get(key); hit {
		return cached
	}
	records := compute(ctx)
	c.lru.Add(key, records)
	return records
}
