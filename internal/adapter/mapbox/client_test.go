package mapbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken         = "test-token"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		token:      testToken,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		breaker:    newBreaker(slog.New(slog.DiscardHandler)),
		metrics:    testMetrics(),
		logger:     slog.New(slog.DiscardHandler),
	}
}

func TestClient_ReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.350000,48.850000.json", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))
		assert.Equal(t, "place,locality,neighborhood", r.URL.Query().Get("types"))

		resp := response{
			Features: []feature{
				{
					Center:    []float64{2.3488, 48.8534},
					PlaceName: "Paris, Île-de-France, France",
					Text:      "Paris",
					Relevance: 0.98,
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.ReverseGeocode(context.Background(), 48.85, 2.35)
	require.NoError(t, err)

	assert.Equal(t, 48.8534, result.Lat)
	assert.Equal(t, 2.3488, result.Lon)
	assert.Equal(t, "Paris, Île-de-France, France", result.FormattedAddress)
	assert.Equal(t, "Paris", result.PlaceName)
	assert.Equal(t, 0.98, result.Confidence)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("success")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(c.metrics.GeocodeAPIDuration))
}

func TestClient_ReverseGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	// Bay of Biscay.
	result, err := c.ReverseGeocode(context.Background(), 45.5, -4.0)
	require.NoError(t, err)
	assert.Equal(t, float64(0), result.Lat)
	assert.Empty(t, result.FormattedAddress)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("empty")), 0)
}

func TestClient_ReverseGeocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.token = "bad-token"

	_, err := c.ReverseGeocode(context.Background(), 48.85, 2.35)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("error")), 0)
}

func TestClient_ReverseGeocode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.ReverseGeocode(context.Background(), 48.85, 2.35)
	require.Error(t, err)
}

func TestClient_ReverseGeocode_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"features":`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ReverseGeocode(context.Background(), 48.85, 2.35)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(testToken, 3*time.Second, slog.New(slog.DiscardHandler), testMetrics())
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

func TestClient_ReverseGeocode_BreakerOpens(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for range breakerTrip {
		_, err := c.ReverseGeocode(context.Background(), 48.85, 2.35)
		require.Error(t, err)
	}

	_, err := c.ReverseGeocode(context.Background(), 48.85, 2.35)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int64(breakerTrip), hits.Load(), "open breaker must not reach the API")
	assert.InDelta(t, breakerTrip+1, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("error")), 0)
}
