package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"giftmarket-backend/lib/serviceutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/market")

const defaultLimit = 10

type Config struct {
	// defaults to https://marketapp.ws
	BaseURL string               `json:"base_url"`
	HTTP    HTTPStrategyConfig   `json:"http"`
	Render  RenderStrategyConfig `json:"render"`
	Cache   CacheConfig          `json:"cache"`
	Enrich  EnricherConfig       `json:"enrich"`
}

type listingResolver interface {
	Resolve(ctx context.Context, collection string, f Filter, limit int) []Listing
}

type listingEnricher interface {
	Enrich(ctx context.Context, records []Listing) []Listing
}

type Service struct {
	resolver listingResolver
	cache    *ListingCache
	enricher listingEnricher
}

// NewService wires the cache in front of the resolver. enricher may be
// nil, in which case enrich requests are served unenriched.
func NewService(resolver listingResolver, cache *ListingCache, enricher listingEnricher) Service {
	return Service{
		resolver: resolver,
		cache:    cache,
		enricher: enricher,
	}
}

func (s Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/nfts", serviceutil.RecoverPanic(s.HandleListings))
}

type listingRequest struct {
	Collection string `json:"collection"`
	Backdrop   string `json:"backdrop"`
	Model      string `json:"model"`
	Symbol     string `json:"symbol"`
	Limit      int    `json:"limit"`
	Enrich     bool   `json:"enrich"`
}

func (s Service) HandleListings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "HandleListings")
	defer span.End()

	if r.Method != http.MethodPost {
		serviceutil.WriteJSON(w, http.StatusMethodNotAllowed, serviceutil.ErrorBody{
			Error: "method not allowed, use POST",
		})
		return
	}

	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serviceutil.WriteJSON(w, http.StatusBadRequest, serviceutil.ErrorBody{
			Error:  `field "collection" is required and must be a string`,
			Detail: err.Error(),
		})
		return
	}
	if req.Collection == "" {
		serviceutil.WriteJSON(w, http.StatusBadRequest, serviceutil.ErrorBody{
			Error: `field "collection" is required and must be a string`,
		})
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	filter := Filter{Backdrop: req.Backdrop, Model: req.Model, Symbol: req.Symbol}

	records := s.cache.GetOrCompute(ctx, Key(req.Collection, filter, limit), func(ctx context.Context) []Listing {
		return s.resolver.Resolve(ctx, req.Collection, filter, limit)
	})

	if len(records) == 0 {
		serviceutil.WriteJSON(w, http.StatusNotFound, serviceutil.ErrorBody{
			Error: fmt.Sprintf("no nfts found for collection %q", req.Collection),
		})
		return
	}

	if req.Enrich && s.enricher != nil {
		records = s.enricher.Enrich(ctx, records)
	}

	serviceutil.WriteJSON(w, http.StatusOK, records)
}
