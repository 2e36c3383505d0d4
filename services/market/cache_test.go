package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetOrComputeMemoizes(t *testing.T) {
	cache := NewListingCache(CacheConfig{})
	records := []Listing{{Name: "n", Slug: "n", Price: 1, Address: "a", Provider: "Marketapp"}}

	calls := 0
	compute := func(context.Context) []Listing {
		calls++
		return records
	}

	key := Key("X", Filter{Backdrop: "Black"}, 10)
	first := cache.GetOrCompute(context.Background(), key, compute)
	second := cache.GetOrCompute(context.Background(), key, compute)

	require.Equal(t, 1, calls)
	require.Equal(t, first, second)

	// a different key computes independently
	cache.GetOrCompute(context.Background(), Key("Y", Filter{Backdrop: "Black"}, 10), compute)
	require.Equal(t, 2, calls)
}

func TestGetOrComputeCachesEmptyResults(t *testing.T) {
	cache := NewListingCache(CacheConfig{})

	calls := 0
	compute := func(context.Context) []Listing {
		calls++
		return nil
	}

	key := Key("empty", Filter{}, 5)
	require.Empty(t, cache.GetOrCompute(context.Background(), key, compute))
	require.Empty(t, cache.GetOrCompute(context.Background(), key, compute))
	require.Equal(t, 1, calls)
}

func TestGetOrComputeExpires(t *testing.T) {
	cache := NewListingCache(CacheConfig{TTLSeconds: 1})

	calls := 0
	compute := func(context.Context) []Listing {
		calls++
		return nil
	}

	key := Key("X", Filter{}, 10)
	cache.GetOrCompute(context.Background(), key, compute)
	time.Sleep(1100 * time.Millisecond)
	cache.GetOrCompute(context.Background(), key, compute)
	require.Equal(t, 2, calls)
}

func TestKeyDeterminism(t *testing.T) {
	a := Key("X", Filter{Backdrop: "Black", Model: "Top Hat"}, 10)
	b := Key("X", Filter{Model: "Top Hat", Backdrop: "Black"}, 10)
	require.Equal(t, a, b)

	require.NotEqual(t, a, Key("X", Filter{Backdrop: "Black", Model: "Top Hat"}, 11))
	require.NotEqual(t, a, Key("Y", Filter{Backdrop: "Black", Model: "Top Hat"}, 10))
}
