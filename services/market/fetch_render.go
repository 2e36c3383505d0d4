package market

import (
	"context"
	"time"

	"giftmarket-backend/lib/browserutil"

	"github.com/go-rod/rod/lib/proto"
)

type RenderStrategyConfig struct {
	// defaults to 3000, covers tab checkout plus navigation
	TimeoutMs int `json:"timeout_ms"`
}

// RenderStrategy drives a pooled headless browser tab to the listing
// page. an order of magnitude slower than the direct path, but the
// javascript challenge actually runs, so it gets through where the
// direct path gets an interstitial.
type RenderStrategy struct {
	pool    *browserutil.Pool
	timeout time.Duration
}

func NewRenderStrategy(pool *browserutil.Pool, cfg RenderStrategyConfig) *RenderStrategy {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &RenderStrategy{pool: pool, timeout: timeout}
}

func (s *RenderStrategy) Name() string { return "render" }

func (s *RenderStrategy) Fetch(ctx context.Context, url string, limit int) Outcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.pool.Acquire(ctx)
	if err != nil {
		return outcomeFromErr(ctx, err)
	}
	defer s.pool.Release(page)

	tab := page.Context(ctx)

	// DOM-ready is enough, the listing table needs no subresources and
	// most of them are hijack-blocked anyway
	wait := tab.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := tab.Navigate(url); err != nil {
		return outcomeFromErr(ctx, err)
	}
	wait()
	if ctx.Err() != nil {
		return outcomeFromErr(ctx, ctx.Err())
	}

	markup, err := tab.HTML()
	if err != nil {
		return outcomeFromErr(ctx, err)
	}
	return Outcome{Kind: OutcomeSuccess, Records: Listings(markup, limit)}
}
