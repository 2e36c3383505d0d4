package market

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
)

// Resolver coordinates the fetch strategies for one listing request.
type Resolver struct {
	baseURL    string
	strategies []Strategy
}

func NewResolver(baseURL string, strategies ...Strategy) *Resolver {
	if baseURL == "" {
		baseURL = "https://marketapp.ws"
	}
	return &Resolver{baseURL: baseURL, strategies: strategies}
}

// ListingURL builds the on-sale listing page address for a collection,
// cheapest first, with any active attribute filters appended.
func (r *Resolver) ListingURL(collection string, f Filter) string {
	target := fmt.Sprintf(
		"%s/collection/%s/?market_filter_by=on_chain&tab=nfts&view=list&query=&sort_by=price_asc&filter_by=sale",
		r.baseURL, url.PathEscape(collection),
	)
	if attrs := EncodeAttrs(f); attrs != "" {
		target += "&" + attrs
	}
	return target
}

// Resolve races every strategy and returns the records of the first
// one to succeed. Blocked, errored and timed-out outcomes just keep it
// waiting on whatever is still in flight; each strategy bounds itself
// with its own timeout, so the wait is bounded too. losers are
// abandoned, their results drain into the buffered channel and are
// discarded. when nothing succeeds Resolve returns nil rather than an
// error, the caller cannot act on the difference between "blocked
// everywhere" and "collection has no listings".
func (r *Resolver) Resolve(ctx context.Context, collection string, f Filter, limit int) []Listing {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("collection", collection),
		attribute.Int("limit", limit),
	)

	target := r.ListingURL(collection, f)

	results := make(chan Outcome, len(r.strategies))
	for _, s := range r.strategies {
		go func(s Strategy) {
			out := s.Fetch(ctx, target, limit)
			out.Strategy = s.Name()
			results <- out
		}(s)
	}

	for range r.strategies {
		out := <-results
		if out.Kind == OutcomeSuccess {
			span.SetAttributes(
				attribute.String("winner", out.Strategy),
				attribute.Int("records", len(out.Records)),
			)
			return out.Records
		}
		slog.WarnContext(ctx, "fetch strategy did not produce a page",
			"strategy", out.Strategy,
			"kind", out.Kind.String(),
			"reason", out.Reason,
			"err", out.Err,
		)
	}
	return nil
}
