package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name    string
	delay   time.Duration
	outcome Outcome
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Fetch(ctx context.Context, url string, limit int) Outcome {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return s.outcome
}

func TestResolveFirstSuccessWins(t *testing.T) {
	fast := []Listing{{Name: "fast", Slug: "fast", Price: 1, Address: "a", Provider: "Marketapp"}}
	slow := []Listing{{Name: "slow", Slug: "slow", Price: 2, Address: "b", Provider: "Getgems"}}

	resolver := NewResolver("",
		stubStrategy{name: "http", delay: 5 * time.Millisecond, outcome: Outcome{Kind: OutcomeSuccess, Records: fast}},
		stubStrategy{name: "render", delay: 200 * time.Millisecond, outcome: Outcome{Kind: OutcomeSuccess, Records: slow}},
	)

	start := time.Now()
	records := resolver.Resolve(context.Background(), "X", Filter{}, 10)
	require.Equal(t, fast, records)
	// the render strategy's result must not be awaited, let alone used
	require.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestResolveFallsBackPastBlocked(t *testing.T) {
	good := []Listing{{Name: "n", Slug: "n", Price: 1, Address: "a", Provider: "Fragment"}}

	resolver := NewResolver("",
		stubStrategy{name: "http", outcome: Outcome{Kind: OutcomeBlocked, Reason: "challenge"}},
		stubStrategy{name: "render", delay: 20 * time.Millisecond, outcome: Outcome{Kind: OutcomeSuccess, Records: good}},
	)

	require.Equal(t, good, resolver.Resolve(context.Background(), "X", Filter{}, 10))
}

func TestResolveAllFailed(t *testing.T) {
	resolver := NewResolver("",
		stubStrategy{name: "http", outcome: Outcome{Kind: OutcomeBlocked, Reason: "challenge"}},
		stubStrategy{name: "render", outcome: Outcome{Kind: OutcomeTimeout}},
	)

	require.Empty(t, resolver.Resolve(context.Background(), "X", Filter{}, 10))
}

func TestListingURL(t *testing.T) {
	resolver := NewResolver("https://example.test")

	plain := resolver.ListingURL("plushpepe", Filter{})
	require.Equal(t,
		"https://example.test/collection/plushpepe/?market_filter_by=on_chain&tab=nfts&view=list&query=&sort_by=price_asc&filter_by=sale",
		plain,
	)

	filtered := resolver.ListingURL("plushpepe", Filter{Model: "Top Hat", Backdrop: "all"})
	require.Equal(t, plain+"&attrs=Model___Top+Hat", filtered)
}
