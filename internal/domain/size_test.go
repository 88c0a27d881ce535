package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeEncoder_SizeFor(t *testing.T) {
	enc := DefaultSizeEncoder()

	tests := []struct {
		name       string
		value      float64
		selected   bool
		confidence float64
		want       float64
	}{
		{"below min clamps", 10, false, 1, 0.5},
		{"linear range", 160, false, 1, 1.6},
		{"above max clamps", 250, false, 1, 2},
		{"selected boost", 100, true, 1, 1.5},
		{"selected at max", 400, true, 1, 3},
		{"zero confidence", 100, false, 0, 1.0 / 3},
		{"half confidence", 150, false, 0.5, 1.0},
		{"confidence above one is capped", 100, false, 4, 1},
		{"negative confidence floors at zero", 100, false, -1, 1.0 / 3},
		{"NaN value renders at min", math.NaN(), false, 1, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, enc.SizeFor(tc.value, tc.selected, tc.confidence), 1e-9)
		})
	}
}

func TestSizeEncoder_Monotonic(t *testing.T) {
	enc := DefaultSizeEncoder()
	for _, c := range []float64{0, 0.3, 0.9, 1} {
		prev := math.Inf(-1)
		for v := -50.0; v <= 400; v += 5 {
			got := enc.SizeFor(v, false, c)
			assert.GreaterOrEqual(t, got, prev, "value %v confidence %v", v, c)
			assert.GreaterOrEqual(t, enc.SizeFor(v, true, c), got)
			prev = got
		}
	}

	prev := 0.0
	for c := 0.0; c <= 1; c += 0.1 {
		got := enc.SizeFor(120, false, c)
		assert.Greater(t, got, prev)
		prev = got
	}
}

func TestNewSizeEncoder(t *testing.T) {
	enc, err := NewSizeEncoder(60, 0.5, 2, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, enc.SizeFor(60, false, 1), 1e-9)

	for name, args := range map[string][4]float64{
		"zero reference":    {0, 0.5, 2, 1.5},
		"min not below max": {100, 2, 2, 1.5},
		"non-positive min":  {100, 0, 2, 1.5},
		"boost not above 1": {100, 0.5, 2, 1},
		"NaN reference":     {math.NaN(), 0.5, 2, 1.5},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewSizeEncoder(args[0], args[1], args[2], args[3])
			require.ErrorIs(t, err, ErrInvalidSizeEncoder)
		})
	}
}
