package tempo

import (
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
)

// Station is a ground AQI monitor used for fixtures.
type Station struct {
	Name      string
	Latitude  float64
	Longitude float64
	AQI       float64
}

// ParisStations are the Paris monitors shown on the AQI sphere view.
func ParisStations() []Station {
	return []Station{
		{Name: "Paris Centre", Latitude: 48.8566, Longitude: 2.3522, AQI: 45},
		{Name: "Louvre", Latitude: 48.8606, Longitude: 2.3376, AQI: 52},
		{Name: "Notre-Dame", Latitude: 48.8534, Longitude: 2.3488, AQI: 38},
		{Name: "Arc de Triomphe", Latitude: 48.8738, Longitude: 2.2950, AQI: 61},
		{Name: "Bureau", Latitude: 48.8666, Longitude: 2.3622, AQI: 78},
		{Name: "Parc Monceau", Latitude: 48.8798, Longitude: 2.3076, AQI: 32},
		{Name: "Tour Eiffel", Latitude: 48.8584, Longitude: 2.2945, AQI: 56},
		{Name: "Montmartre", Latitude: 48.8867, Longitude: 2.3431, AQI: 41},
		{Name: "Périphérique Nord", Latitude: 48.8990, Longitude: 2.3600, AQI: 168},
	}
}

// Record converts the station reading at ts to its wire form.
func (s Station) Record(ts time.Time) domain.RawRecord {
	aqi := s.AQI
	return domain.RawRecord{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		AQI:       &aqi,
		Timestamp: ts.UTC().Format(time.RFC3339),
		Location:  s.Name,
	}
}
