package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/observability"
	"github.com/sony/gobreaker/v2"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// breakerTrip is the number of consecutive failures that opens the breaker.
const breakerTrip = 5

// Client implements domain.Geocoder using the Mapbox reverse geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker[domain.GeocodingResult]
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		breaker: newBreaker(logger),
		metrics: metrics,
		logger:  logger,
	}
}

// newBreaker stops calling Mapbox after breakerTrip consecutive failures and
// probes again with a single request after 30s.
func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker[domain.GeocodingResult] {
	return gobreaker.NewCircuitBreaker[domain.GeocodingResult](gobreaker.Settings{
		Name:        "mapbox",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("geocoder circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// ReverseGeocode resolves coordinates to the nearest named place. An empty
// result with a nil error means Mapbox knows nothing at that position, which
// is common for grid cells over open sea. While the breaker is open calls fail
// fast with gobreaker.ErrOpenState.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	u := fmt.Sprintf("%s/%s.json", c.baseURL, coord)
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
		"types":        {"place,locality,neighborhood"},
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (domain.GeocodingResult, error) {
		return c.doRequest(ctx, u+"?"+params.Encode())
	})
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		c.logger.Debug("reverse geocode failed", "lat", lat, "lon", lon, "error", err)
	case result.PlaceName == "" && result.FormattedAddress == "":
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
	default:
		c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	}
	return result, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.GeocodingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.GeocodingResult{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(mapboxResp.Features) == 0 {
		return domain.GeocodingResult{}, nil
	}

	f := mapboxResp.Features[0]
	result := domain.GeocodingResult{
		FormattedAddress: f.PlaceName,
		PlaceName:        f.Text,
		Confidence:       f.Relevance,
	}
	if len(f.Center) == 2 {
		result.Lon = f.Center[0]
		result.Lat = f.Center[1]
	}
	return result, nil
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Text      string    `json:"text"`
	Relevance float64   `json:"relevance"`
}
