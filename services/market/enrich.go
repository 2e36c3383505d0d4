package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"giftmarket-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
)

const (
	// cap on concurrent metadata lookups against the gift registry
	enrichConcurrency = 5
	unknownAttribute  = "Unknown"
)

type EnricherConfig struct {
	// defaults to https://nft.fragment.com
	BaseURL   string `json:"base_url"`
	TimeoutMs int    `json:"timeout_ms"`
	// per-slug attribute cache; attributes never change for a minted
	// gift, so the TTL is generous. defaults: 4096 entries, 15 minutes.
	CacheSize       int `json:"cache_size"`
	CacheTTLSeconds int `json:"cache_ttl_seconds"`
}

// Attributes is the secondary metadata attached to a gift.
type Attributes struct {
	Model    string
	Backdrop string
	Symbol   string
}

// Enricher resolves per-gift attributes from the registry's json
// endpoint, keyed by slug.
type Enricher struct {
	client  *resty.Client
	cache   *expirable.LRU[string, Attributes]
	baseURL string
}

func NewEnricher(cfg EnricherConfig) *Enricher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://nft.fragment.com"
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 4096
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	client := resty.New()
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, "services/market/enrich")

	return &Enricher{
		client:  client,
		cache:   expirable.NewLRU[string, Attributes](size, nil, ttl),
		baseURL: baseURL,
	}
}

// Enrich returns a copy of records with model/backdrop/symbol filled
// in. lookups run concurrently but capped; a failed lookup degrades
// the record to "Unknown" attributes instead of dropping it. the input
// slice is left untouched so cached snapshots stay immutable.
func (e *Enricher) Enrich(ctx context.Context, records []Listing) []Listing {
	out := make([]Listing, len(records))
	copy(out, records)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range out {
		i := i
		g.Go(func() error {
			attrs := e.attributes(ctx, out[i].Slug)
			out[i].Model = attrs.Model
			out[i].Backdrop = attrs.Backdrop
			out[i].Symbol = attrs.Symbol
			return nil
		})
	}
	g.Wait()
	return out
}

func (e *Enricher) attributes(ctx context.Context, slug string) Attributes {
	if cached, hit := e.cache.Get(slug); hit {
		return cached
	}

	unknown := Attributes{
		Model:    unknownAttribute,
		Backdrop: unknownAttribute,
		Symbol:   unknownAttribute,
	}

	res, err := e.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/gift/%s.json", e.baseURL, slug))
	if err != nil || res.IsError() {
		slog.WarnContext(ctx, "failed to fetch gift attributes", "slug", slug, "err", err)
		return unknown
	}

	var payload struct {
		Attributes []struct {
			TraitType string `json:"trait_type"`
			Value     string `json:"value"`
		} `json:"attributes"`
	}
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		slog.WarnContext(ctx, "failed to decode gift attributes", "slug", slug, "err", err)
		return unknown
	}

	attrs := unknown
	for _, a := range payload.Attributes {
		switch strings.ToLower(a.TraitType) {
		case "model":
			attrs.Model = a.Value
		case "backdrop":
			attrs.Backdrop = a.Value
		case "symbol":
			attrs.Symbol = a.Value
		}
	}
	e.cache.Add(slug, attrs)
	return attrs
}
