package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps processed_at on scene points.
var clock = clockwork.NewRealClock()

// SetClock replaces the processed_at time source; nil restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}

// ParseRawEvent decodes a source message and extracts the reading for p.
// Records without a value for p are rejected with ErrMissingReading.
func ParseRawEvent(raw RawEvent, p Parameter) (GeoMeasurement, error) {
	var rec RawRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return GeoMeasurement{}, fmt.Errorf("parse raw event: %w", err)
	}
	return MeasurementFromRecord(rec, p, raw.Timestamp)
}

// MeasurementFromRecord reduces a wire record to a GeoMeasurement. fallback is
// used as the timestamp when the record carries none. Out-of-range records
// fail with ErrInvalidRecord.
func MeasurementFromRecord(rec RawRecord, p Parameter, fallback time.Time) (GeoMeasurement, error) {
	if err := ValidateRecord(rec); err != nil {
		return GeoMeasurement{}, err
	}

	value, ok := p.Record(rec)
	if !ok {
		return GeoMeasurement{}, fmt.Errorf("%w: no %s value at %.4f,%.4f", ErrMissingReading, p, rec.Latitude, rec.Longitude)
	}

	ts, err := normalizeTimestamp(rec.Timestamp, fallback)
	if err != nil {
		return GeoMeasurement{}, err
	}

	confidence := 1.0
	if rec.Confidence != nil {
		confidence = *rec.Confidence
	}

	label := strings.TrimSpace(rec.Location)
	if label == "" {
		label = generateLabel(p, rec.Latitude, rec.Longitude)
	}

	return GeoMeasurement{
		Label:      label,
		Parameter:  p,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		Value:      value,
		Confidence: confidence,
		Timestamp:  ts,
	}, nil
}

// normalizeTimestamp validates an ISO-8601 timestamp and rewrites it in UTC.
func normalizeTimestamp(s string, fallback time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if fallback.IsZero() {
			return "", nil
		}
		return fallback.UTC().Format(time.RFC3339), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "", fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC().Format(time.RFC3339Nano), nil
}

// generateLabel gives grid samples a stable identity: the same cell always
// maps to the same label, so newer retrievals replace older ones downstream.
func generateLabel(p Parameter, lat, lon float64) string {
	input := fmt.Sprintf("%s|%.4f|%.4f", p, lat, lon)
	hash := sha256.Sum256([]byte(input))
	return p.String() + "-" + hex.EncodeToString(hash[:8])
}

// StampProcessed records the processing time on a scene point.
func StampProcessed(point ScenePoint) ScenePoint {
	point.ProcessedAt = clock.Now().UTC()
	return point
}

// SerializeScenePoint converts a scene point into a sink message keyed by label.
func SerializeScenePoint(point ScenePoint) (OutputEvent, error) {
	data, err := json.Marshal(point)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize scene point: %w", err)
	}
	return OutputEvent{
		Key:   []byte(point.Label),
		Value: data,
		Headers: map[string]string{
			"parameter":    point.Source.Parameter.String(),
			"processed_at": point.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
