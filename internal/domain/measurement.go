package domain

import (
	"context"
	"time"

	"github.com/golang/geo/r3"
)

// RawRecord is the flat JSON structure published to the source topic. Station
// feeds fill AQI; TEMPO feeds fill NO2, O3 and AOD. Missing readings are nil.
type RawRecord struct {
	Latitude   float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64  `json:"longitude" validate:"gte=-180,lte=180"`
	AQI        *float64 `json:"aqi,omitempty"`
	NO2        *float64 `json:"no2,omitempty"`
	O3         *float64 `json:"o3,omitempty"`
	AOD        *float64 `json:"aod,omitempty"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Timestamp  string   `json:"timestamp"`
	Location   string   `json:"location,omitempty" validate:"omitempty,max=128"` // site identifier, empty for grid samples
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// TempoSample is one cell of a TEMPO satellite retrieval.
type TempoSample struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	NO2        float64 `json:"no2"`
	O3         float64 `json:"o3"`
	AOD        float64 `json:"aod"`
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}

// Record converts the sample to its wire form.
func (s TempoSample) Record() RawRecord {
	no2, o3, aod, conf := s.NO2, s.O3, s.AOD, s.Confidence
	return RawRecord{
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		NO2:        &no2,
		O3:         &o3,
		AOD:        &aod,
		Confidence: &conf,
		Timestamp:  s.Timestamp,
	}
}

// GeoMeasurement is a single reading of the active parameter at a location.
// Values are immutable once produced; Label is the identity.
type GeoMeasurement struct {
	Label      string    `json:"label"`
	Parameter  Parameter `json:"parameter"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Value      float64   `json:"value"`
	Confidence float64   `json:"confidence"`
	Timestamp  string    `json:"timestamp"`
	PlaceName  string    `json:"place_name,omitempty"`
}

// RGB is a linear color with channels in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ScenePoint is a renderable primitive derived from a GeoMeasurement.
// It is recomputed whenever its inputs change and never patched in place.
type ScenePoint struct {
	Label       string         `json:"label"`
	Position    r3.Vector      `json:"position"`
	Color       RGB            `json:"color"`
	Intensity   float64        `json:"intensity"`
	Scale       float64        `json:"scale"`
	Elevated    bool           `json:"elevated"`
	Selected    bool           `json:"selected,omitempty"`
	Source      GeoMeasurement `json:"source"`
	ProcessedAt time.Time      `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
