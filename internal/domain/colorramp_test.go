package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAQIBands_ColorFor(t *testing.T) {
	bands := AQIBands()

	tests := []struct {
		value float64
		want  string
		label string
	}{
		{0, "#10B981", "Good"},
		{50, "#10B981", "Good"},
		{51, "#F59E0B", "Moderate"},
		{100, "#F59E0B", "Moderate"},
		{100.5, "#F97316", "Unhealthy for Sensitive Groups"},
		{150, "#F97316", "Unhealthy for Sensitive Groups"},
		{160, "#EF4444", "Unhealthy"},
		{200, "#EF4444", "Unhealthy"},
		{201, "#8B5CF6", "Very Unhealthy"},
		{300, "#8B5CF6", "Very Unhealthy"},
		{301, "#7F1D1D", "Hazardous"},
		{5000, "#7F1D1D", "Hazardous"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, bands.ColorFor(tc.value).Hex(), "value %v", tc.value)
		assert.Equal(t, tc.label, bands.Band(tc.value).Label, "value %v", tc.value)
	}
}

func TestAQIBands_SameBandSameColor(t *testing.T) {
	bands := AQIBands()
	for v := 101.0; v < 150; v += 7 {
		assert.Equal(t, bands.ColorFor(101), bands.ColorFor(v))
	}
	assert.NotEqual(t, bands.ColorFor(50), bands.ColorFor(51))
}

func TestBandTable_NaNFallsInLastBand(t *testing.T) {
	assert.Equal(t, "#7F1D1D", AQIBands().ColorFor(math.NaN()).Hex())
}

func TestNewBandTable(t *testing.T) {
	red := RGB{R: 1}
	green := RGB{G: 1}

	t.Run("valid", func(t *testing.T) {
		table, err := NewBandTable([]Band{{UpperBound: 10, Color: green}, {UpperBound: 20, Color: red}})
		require.NoError(t, err)
		assert.Equal(t, green, table.ColorFor(10))
		assert.Equal(t, red, table.ColorFor(11))
		assert.Equal(t, red, table.ColorFor(1e9), "last bound acts as +Inf")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewBandTable(nil)
		require.ErrorIs(t, err, ErrInvalidBandTable)
	})

	t.Run("equal bounds", func(t *testing.T) {
		_, err := NewBandTable([]Band{{UpperBound: 10}, {UpperBound: 10}})
		require.ErrorIs(t, err, ErrInvalidBandTable)
	})

	t.Run("decreasing bounds", func(t *testing.T) {
		_, err := NewBandTable([]Band{{UpperBound: 10}, {UpperBound: 20}, {UpperBound: 15}})
		require.ErrorIs(t, err, ErrInvalidBandTable)
		assert.Contains(t, err.Error(), "bound 2")
	})

	t.Run("copies input", func(t *testing.T) {
		in := []Band{{UpperBound: 10, Color: green}}
		table, err := NewBandTable(in)
		require.NoError(t, err)
		in[0].Color = red
		assert.Equal(t, green, table.ColorFor(5))
	})
}

func TestParameterTint(t *testing.T) {
	no2 := ParameterTint{Parameter: ParameterNO2}
	assert.Equal(t, RGB{R: 1, G: 0.1, B: 0.1}, no2.ColorFor(30))
	assert.Equal(t, RGB{R: 1, G: 0.2, B: 0.2}, no2.ColorFor(600), "intensity caps at 1")

	o3 := ParameterTint{Parameter: ParameterO3}
	assert.Equal(t, RGB{R: 1, G: 0.6, B: 0}, o3.ColorFor(150))

	aod := ParameterTint{Parameter: ParameterAOD}
	got := aod.ColorFor(0.75)
	assert.InDelta(t, 0.4, got.R, 1e-9)
	assert.Equal(t, 0.0, got.G)
	assert.Equal(t, 1.0, got.B)
}

func TestIntensity_ClampsToUnitRange(t *testing.T) {
	assert.Equal(t, 0.0, Intensity(ParameterNO2, -30))
	assert.Equal(t, 0.0, Intensity(ParameterAQI, -60))
	assert.InDelta(t, 0.5, Intensity(ParameterNO2, 30), 1e-12)
	assert.Equal(t, 1.0, Intensity(ParameterAOD, 9))
	assert.True(t, math.IsNaN(Intensity(ParameterO3, math.NaN())))

	// Negative retrievals tint like a zero reading.
	no2 := ParameterTint{Parameter: ParameterNO2}
	assert.Equal(t, RGB{R: 1, G: 0, B: 0}, no2.ColorFor(-30))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#EF4444")
	require.NoError(t, err)
	assert.InDelta(t, 239.0/255, c.R, 1e-9)
	assert.InDelta(t, 68.0/255, c.G, 1e-9)
	assert.Equal(t, "#EF4444", c.Hex())

	_, err = ParseHex("#12345")
	require.Error(t, err)
	_, err = ParseHex("#GGGGGG")
	require.Error(t, err)
}

func TestRGB_HexClampsChannels(t *testing.T) {
	assert.Equal(t, "#FF0000", RGB{R: 2, G: -1, B: math.NaN()}.Hex())
}
