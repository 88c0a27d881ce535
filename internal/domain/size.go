package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSizeEncoder is returned for inconsistent SizeEncoder settings.
var ErrInvalidSizeEncoder = errors.New("invalid size encoder")

// SizeEncoder maps a reading to a glyph scale. Unlike elevation, the result is
// clamped so glyphs stay usable on screen.
type SizeEncoder struct {
	Reference      float64 `json:"reference"`
	MinScale       float64 `json:"min_scale"`
	MaxScale       float64 `json:"max_scale"`
	SelectionBoost float64 `json:"selection_boost"`
}

// NewSizeEncoder validates the settings.
func NewSizeEncoder(reference, minScale, maxScale, boost float64) (SizeEncoder, error) {
	switch {
	case !(reference > 0):
		return SizeEncoder{}, fmt.Errorf("%w: reference must be positive, got %g", ErrInvalidSizeEncoder, reference)
	case !(minScale > 0):
		return SizeEncoder{}, fmt.Errorf("%w: min scale must be positive, got %g", ErrInvalidSizeEncoder, minScale)
	case !(minScale < maxScale):
		return SizeEncoder{}, fmt.Errorf("%w: min scale %g must be below max scale %g", ErrInvalidSizeEncoder, minScale, maxScale)
	case !(boost > 1):
		return SizeEncoder{}, fmt.Errorf("%w: selection boost must exceed 1, got %g", ErrInvalidSizeEncoder, boost)
	}
	return SizeEncoder{Reference: reference, MinScale: minScale, MaxScale: maxScale, SelectionBoost: boost}, nil
}

// DefaultSizeEncoder scales AQI spheres: 100 maps to 1, clamped to [0.5, 2],
// selected spheres grow by half.
func DefaultSizeEncoder() SizeEncoder {
	return SizeEncoder{Reference: 100, MinScale: 0.5, MaxScale: 2, SelectionBoost: 1.5}
}

// SizeFor returns the glyph scale for value. Confidence is clamped to [0, 1]
// and weights the size by (1+2c)/3, so full confidence leaves it unchanged.
// A NaN value renders at the minimum scale.
func (e SizeEncoder) SizeFor(value float64, selected bool, confidence float64) float64 {
	base := e.MinScale
	if !math.IsNaN(value) {
		base = math.Max(e.MinScale, math.Min(e.MaxScale, value/e.Reference))
	}
	if selected {
		base *= e.SelectionBoost
	}
	return base * confidenceWeight(confidence)
}

func confidenceWeight(c float64) float64 {
	if math.IsNaN(c) || c >= 1 {
		return 1
	}
	if c < 0 {
		c = 0
	}
	return (1 + 2*c) / 3
}
