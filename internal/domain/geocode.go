package domain

import (
	"context"
	"log/slog"
)

// GeocodingResult is a provider's answer for one position. Both names may be
// empty when nothing is known there.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64
}

// Geocoder turns a measurement position into a place name for its label.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}

// EnrichWithPlaceName attaches a human-readable place name to a measurement.
// A nil geocoder, an error or an empty answer leaves the measurement unchanged.
func EnrichWithPlaceName(ctx context.Context, m GeoMeasurement, geocoder Geocoder, logger *slog.Logger) GeoMeasurement {
	if geocoder == nil || m.PlaceName != "" {
		return m
	}

	result, err := geocoder.ReverseGeocode(ctx, m.Latitude, m.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"label", m.Label,
			"lat", m.Latitude,
			"lon", m.Longitude,
			"error", err,
		)
		return m
	}
	if result.PlaceName != "" {
		m.PlaceName = result.PlaceName
	} else if result.FormattedAddress != "" {
		m.PlaceName = result.FormattedAddress
	}
	return m
}
