package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichWithPlaceName_NilGeocoder(t *testing.T) {
	m := GeoMeasurement{Label: "no2-1", Latitude: 48.85, Longitude: 2.35}
	result := EnrichWithPlaceName(context.Background(), m, nil, discardLogger())
	assert.Equal(t, m, result)
}

func TestEnrichWithPlaceName_UsesPlaceName(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{PlaceName: "Paris", FormattedAddress: "Paris, Île-de-France, France"}}
	m := GeoMeasurement{Label: "no2-1", Latitude: 48.85, Longitude: 2.35}

	result := EnrichWithPlaceName(context.Background(), m, geo, discardLogger())

	assert.Equal(t, "Paris", result.PlaceName)
	assert.Equal(t, "no2-1", result.Label, "identity is unchanged")
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichWithPlaceName_FallsBackToAddress(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{FormattedAddress: "Bay of Biscay"}}
	result := EnrichWithPlaceName(context.Background(), GeoMeasurement{Latitude: 45, Longitude: -3}, geo, discardLogger())
	assert.Equal(t, "Bay of Biscay", result.PlaceName)
}

func TestEnrichWithPlaceName_ErrorDegradesGracefully(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("rate limited")}
	m := GeoMeasurement{Label: "aqi-1", Latitude: 48.85, Longitude: 2.35}

	result := EnrichWithPlaceName(context.Background(), m, geo, discardLogger())

	assert.Empty(t, result.PlaceName)
	assert.Equal(t, m, result)
}

func TestEnrichWithPlaceName_SkipsAlreadyNamed(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{PlaceName: "Lyon"}}
	m := GeoMeasurement{PlaceName: "Paris"}

	result := EnrichWithPlaceName(context.Background(), m, geo, discardLogger())

	assert.Equal(t, "Paris", result.PlaceName)
	assert.Equal(t, 0, geo.calls)
}
