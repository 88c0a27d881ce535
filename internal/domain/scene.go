package domain

import "fmt"

// ElevatedAQI is the AQI above which spheres pulse.
const ElevatedAQI = 150

// View bundles everything needed to turn measurements into scene points.
// Views are built once at startup and shared read-only.
type View struct {
	Parameter     Parameter
	Frame         ReferenceFrame
	Colors        Colorizer
	Sizes         SizeEncoder
	ElevatedAbove float64
	Pulse         PulseMode
}

// AQIView renders AQI stations as banded spheres around Paris.
func AQIView() View {
	return View{
		Parameter:     ParameterAQI,
		Frame:         AQIFrame(),
		Colors:        AQIBands(),
		Sizes:         DefaultSizeEncoder(),
		ElevatedAbove: ElevatedAQI,
	}
}

// TempoView renders one TEMPO parameter as a tinted particle cloud. Every
// positive reading pulses, and size is normalized to the parameter maximum.
func TempoView(p Parameter) (View, error) {
	if p == ParameterAQI || !p.Valid() {
		return View{}, fmt.Errorf("%w: %s is not a TEMPO parameter", ErrUnknownParameter, p)
	}
	sizes, err := NewSizeEncoder(p.Max(), 0.5, 2, 1.5)
	if err != nil {
		return View{}, err
	}
	return View{
		Parameter:     p,
		Frame:         TempoFrame(),
		Colors:        ParameterTint{Parameter: p},
		Sizes:         sizes,
		ElevatedAbove: 0,
		Pulse:         PulseParticle,
	}, nil
}

// ViewFor returns the stock view for p.
func ViewFor(p Parameter) (View, error) {
	if p == ParameterAQI {
		return AQIView(), nil
	}
	return TempoView(p)
}

// Point runs the full transform for one measurement.
func (v View) Point(m GeoMeasurement, selected bool) ScenePoint {
	return ScenePoint{
		Label:     m.Label,
		Position:  Project(m, v.Frame),
		Color:     v.Colors.ColorFor(m.Value),
		Intensity: Intensity(v.Parameter, m.Value),
		Scale:     v.Sizes.SizeFor(m.Value, selected, m.Confidence),
		Elevated:  m.Value > v.ElevatedAbove,
		Selected:  selected,
		Source:    m,
	}
}

// BuildScene transforms every measurement, in input order, into a new slice.
// The point whose label equals selected is drawn selected; pass "" for none.
func BuildScene(v View, measurements []GeoMeasurement, selected string) []ScenePoint {
	points := make([]ScenePoint, len(measurements))
	for i, m := range measurements {
		points[i] = v.Point(m, selected != "" && m.Label == selected)
	}
	return points
}
