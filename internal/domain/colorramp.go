package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidBandTable is returned when a band table is empty or its bounds
// are not strictly increasing.
var ErrInvalidBandTable = errors.New("invalid band table")

// Colorizer maps a reading to a display color.
type Colorizer interface {
	ColorFor(value float64) RGB
}

// Band is one severity band. Values up to and including UpperBound fall in it.
type Band struct {
	UpperBound float64 `json:"upper_bound"`
	Color      RGB     `json:"color"`
	Label      string  `json:"label"`
}

// BandTable is an ordered set of bands. The last band's bound is treated as
// +Inf, so the table covers every value.
type BandTable struct {
	bands []Band
}

// NewBandTable validates and copies bands.
func NewBandTable(bands []Band) (*BandTable, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidBandTable)
	}
	for i := 1; i < len(bands); i++ {
		// NaN bounds fail this comparison too.
		if !(bands[i].UpperBound > bands[i-1].UpperBound) {
			return nil, fmt.Errorf("%w: bound %d (%g) does not exceed bound %d (%g)",
				ErrInvalidBandTable, i, bands[i].UpperBound, i-1, bands[i-1].UpperBound)
		}
	}
	return &BandTable{bands: append([]Band(nil), bands...)}, nil
}

// AQIBands returns the EPA AQI band table.
func AQIBands() *BandTable {
	return &BandTable{bands: []Band{
		{UpperBound: 50, Color: MustHex("#10B981"), Label: "Good"},
		{UpperBound: 100, Color: MustHex("#F59E0B"), Label: "Moderate"},
		{UpperBound: 150, Color: MustHex("#F97316"), Label: "Unhealthy for Sensitive Groups"},
		{UpperBound: 200, Color: MustHex("#EF4444"), Label: "Unhealthy"},
		{UpperBound: 300, Color: MustHex("#8B5CF6"), Label: "Very Unhealthy"},
		{UpperBound: math.Inf(1), Color: MustHex("#7F1D1D"), Label: "Hazardous"},
	}}
}

// Bands returns a copy of the table.
func (t *BandTable) Bands() []Band {
	return append([]Band(nil), t.bands...)
}

// Band returns the first band whose bound is >= value, or the last band when
// value exceeds every bound. NaN compares false everywhere and lands in the
// last band.
func (t *BandTable) Band(value float64) Band {
	for _, b := range t.bands {
		if value <= b.UpperBound {
			return b
		}
	}
	return t.bands[len(t.bands)-1]
}

// ColorFor implements Colorizer.
func (t *BandTable) ColorFor(value float64) RGB {
	return t.Band(value).Color
}

// ParameterTint colors TEMPO particles by a per-parameter hue whose
// saturation follows the normalized reading.
type ParameterTint struct {
	Parameter Parameter
}

// Intensity normalizes value against the parameter maximum and clamps it to
// [0, 1]. NaN stays NaN.
func Intensity(p Parameter, value float64) float64 {
	return math.Max(0, math.Min(value/p.Max(), 1))
}

// ColorFor implements Colorizer.
func (t ParameterTint) ColorFor(value float64) RGB {
	i := Intensity(t.Parameter, value)
	switch t.Parameter {
	case ParameterNO2:
		return RGB{R: 1, G: i * 0.2, B: i * 0.2}
	case ParameterO3:
		return RGB{R: 1, G: i * 0.6, B: 0}
	default:
		return RGB{R: i * 0.8, G: 0, B: 1}
	}
}

// ParseHex parses a "#RRGGBB" color.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// MustHex is ParseHex for package-level literals.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#RRGGBB", clamping channels to [0, 1].
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
