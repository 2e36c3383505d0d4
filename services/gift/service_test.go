package gift

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"giftmarket-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB, baseURL string) (*http.ServeMux, func()) {
	cleanup := telemetry.SetupForTesting(t, "test:services/gift")

	service := NewService(Config{BaseURL: baseURL})
	mux := http.NewServeMux()
	service.RegisterRoutes(mux)
	return mux, cleanup
}

func postGift(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/gift", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHandleDetails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/nft/crystal-ball-123", r.URL.Path)
		fmt.Fprint(w, detailFixture)
	}))
	defer ts.Close()

	mux, cleanup := setup(t, ts.URL)
	defer cleanup()

	w := postGift(mux, `{"slug": "crystal-ball-123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var details Details
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.NotNil(t, details.Owner)
	require.Equal(t, "Some Owner", details.Owner.Name)
	require.NotNil(t, details.Model)
	require.Equal(t, "Opal", details.Model.Name)
}

func TestHandleDetailsMethodNotAllowed(t *testing.T) {
	mux, cleanup := setup(t, "http://127.0.0.1:0")
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/gift", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleDetailsMissingSlug(t *testing.T) {
	mux, cleanup := setup(t, "http://127.0.0.1:0")
	defer cleanup()

	for _, body := range []string{`{}`, `{"slug": ""}`, `not json`} {
		w := postGift(mux, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestHandleDetailsFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	mux, cleanup := setup(t, ts.URL)
	defer cleanup()

	w := postGift(mux, `{"slug": "crystal-ball-123"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "failed to fetch or parse", body["error"])
}
