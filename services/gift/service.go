package gift

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"giftmarket-backend/lib/serviceutil"
	"giftmarket-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/gift")

type Config struct {
	// defaults to https://t.me
	BaseURL   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	// defaults to 1000; detail pages are static and served fast
	TimeoutMs int `json:"timeout_ms"`
}

type Service struct {
	client  *resty.Client
	baseURL string
}

func NewService(cfg Config) Service {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://t.me"
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0"
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Second
	}

	client := resty.New()
	client.SetHeader("User-Agent", ua)
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, "services/gift")

	return Service{client: client, baseURL: baseURL}
}

func (s Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/gift", serviceutil.RecoverPanic(s.HandleDetails))
}

type detailsRequest struct {
	Slug string `json:"slug"`
}

func (s Service) HandleDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "HandleDetails")
	defer span.End()

	if r.Method != http.MethodPost {
		serviceutil.WriteJSON(w, http.StatusMethodNotAllowed, serviceutil.ErrorBody{
			Error: "method not allowed, use POST",
		})
		return
	}

	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slug == "" {
		serviceutil.WriteJSON(w, http.StatusBadRequest, serviceutil.ErrorBody{
			Error: "missing slug",
		})
		return
	}

	details, err := s.Details(ctx, req.Slug)
	if err != nil {
		serviceutil.WriteJSON(w, http.StatusInternalServerError, serviceutil.ErrorBody{
			Error:  "failed to fetch or parse",
			Detail: err.Error(),
		})
		return
	}

	serviceutil.WriteJSON(w, http.StatusOK, details)
}

// Details fetches and parses the public detail page for one gift.
// error pages still render a parseable table, so any response status
// goes through the parser rather than being rejected up front.
func (s Service) Details(ctx context.Context, slug string) (Details, error) {
	res, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/nft/%s", s.baseURL, url.PathEscape(slug)))
	if err != nil {
		return Details{}, err
	}
	return ParseDetails(res.String())
}
