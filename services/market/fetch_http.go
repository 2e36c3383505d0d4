package market

import (
	"context"
	"fmt"
	"time"

	"giftmarket-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	fakeua "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"
)

type HTTPStrategyConfig struct {
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	// defaults to 800, the direct path is only worth it when fast
	TimeoutMs int `json:"timeout_ms"`
}

// HTTPStrategy fetches the listing page with a plain GET dressed up as
// a browser. cheap, but gets served challenge pages often enough that
// every response goes through Classify before being trusted.
type HTTPStrategy struct {
	client  *resty.Client
	timeout time.Duration
}

func NewHTTPStrategy(cfg HTTPStrategyConfig) *HTTPStrategy {
	ua := cfg.UserAgent
	if ua == "" {
		ua = fakeua.Chrome()
	}
	referer := cfg.Referer
	if referer == "" {
		referer = "https://marketapp.ws/"
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 800 * time.Millisecond
	}

	client := resty.New()
	client.SetHeader("User-Agent", ua)
	client.SetHeader("Referer", referer)
	client.SetHeader("Accept", "text/html")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, "services/market/http")

	return &HTTPStrategy{client: client, timeout: timeout}
}

func (s *HTTPStrategy) Name() string { return "http" }

func (s *HTTPStrategy) Fetch(ctx context.Context, url string, limit int) Outcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return outcomeFromErr(ctx, err)
	}
	if res.IsError() {
		return Outcome{Kind: OutcomeTransportError, Err: fmt.Errorf("unexpected status %s", res.Status())}
	}

	body := res.String()
	if verdict := Classify(body); verdict.Blocked {
		return Outcome{Kind: OutcomeBlocked, Reason: verdict.Reason}
	}
	return Outcome{Kind: OutcomeSuccess, Records: Listings(body, limit)}
}
