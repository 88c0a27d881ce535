package domain

import "github.com/golang/geo/r3"

// ReferenceFrame fixes the origin and scale factors of a view's projection.
type ReferenceFrame struct {
	OriginLatitude  float64 `json:"origin_latitude"`
	OriginLongitude float64 `json:"origin_longitude"`
	LateralScale    float64 `json:"lateral_scale"`
	VerticalScale   float64 `json:"vertical_scale"`
	Baseline        float64 `json:"baseline"`
}

// Paris is the default origin of both stock views.
const (
	ParisLatitude  = 48.85
	ParisLongitude = 2.35
)

// AQIFrame is the frame used by the AQI sphere view.
func AQIFrame() ReferenceFrame {
	return ReferenceFrame{
		OriginLatitude:  ParisLatitude,
		OriginLongitude: ParisLongitude,
		LateralScale:    10,
		VerticalScale:   1.0 / 20,
		Baseline:        50,
	}
}

// TempoFrame is the frame used by the TEMPO particle view.
func TempoFrame() ReferenceFrame {
	return ReferenceFrame{
		OriginLatitude:  ParisLatitude,
		OriginLongitude: ParisLongitude,
		LateralScale:    8,
		VerticalScale:   1.0 / 10,
		Baseline:        50,
	}
}

// Project maps a measurement into scene space. Y is up: longitude runs along
// X, latitude along Z and the reading sets the elevation. No clamping is
// applied, so out-of-range readings produce proportionally extreme heights.
func Project(m GeoMeasurement, f ReferenceFrame) r3.Vector {
	return r3.Vector{
		X: (m.Longitude - f.OriginLongitude) * f.LateralScale,
		Y: (m.Value - f.Baseline) * f.VerticalScale,
		Z: (m.Latitude - f.OriginLatitude) * f.LateralScale,
	}
}
