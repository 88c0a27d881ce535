// Package tempo simulates NASA TEMPO air-quality retrievals.
//
// The real TEMPO archive needs credentials and per-granule downloads, so
// development and fixtures use a synthetic grid with realistic spatial
// structure: concentrations decay with distance from central France and are
// perturbed by uniform noise.
package tempo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/golang/geo/s2"
	"github.com/jonboulle/clockwork"
)

// GridStep is the synthetic grid resolution in degrees.
const GridStep = 0.5

// Center of the simulated plume (central France).
const (
	centerLat = 46.5
	centerLon = 2.5
)

// Layer is one day of gridded retrievals.
type Layer struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Timestamp   string               `json:"timestamp"`
	Bounds      [2][2]float64        `json:"bounds"` // [[south, west], [north, east]]
	Data        []domain.TempoSample `json:"data"`
}

// Bounds builds a lat/lon rectangle from its south-west and north-east corners.
func Bounds(south, west, north, east float64) s2.Rect {
	return s2.RectFromLatLng(s2.LatLngFromDegrees(south, west)).
		AddPoint(s2.LatLngFromDegrees(north, east))
}

// EuropeBounds is the default coverage when no bounds are given.
func EuropeBounds() s2.Rect { return Bounds(40, -10, 50, 10) }

// FranceBounds approximates metropolitan France.
func FranceBounds() s2.Rect { return Bounds(42, -5, 51, 8) }

// Generator produces synthetic samples. It is not safe for concurrent use
// because it owns a random source.
type Generator struct {
	rng   *rand.Rand
	clock clockwork.Clock
}

// NewGenerator creates a generator. A nil rng is seeded randomly and a nil
// clock uses real time.
func NewGenerator(rng *rand.Rand, clock clockwork.Clock) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{rng: rng, clock: clock}
}

// Grid samples bounds from its south-west corner at GridStep intervals,
// inclusive of the north and east edges.
func (g *Generator) Grid(bounds s2.Rect) []domain.TempoSample {
	minLat, minLon, maxLat, maxLon := corners(bounds)

	now := g.clock.Now().UTC().Format(time.RFC3339)
	var samples []domain.TempoSample
	for i := 0; ; i++ {
		lat := minLat + float64(i)*GridStep
		if lat > maxLat+1e-9 {
			break
		}
		for j := 0; ; j++ {
			lon := minLon + float64(j)*GridStep
			if lon > maxLon+1e-9 {
				break
			}
			samples = append(samples, g.sample(lat, lon, now))
		}
	}
	return samples
}

func (g *Generator) sample(lat, lon float64, ts string) domain.TempoSample {
	// Planar degree distance; the plume shape does not need great-circle accuracy.
	d := math.Hypot(lat-centerLat, lon-centerLon)

	no2 := math.Max(20, 45-d*15+g.noise(20))
	o3 := math.Max(80, 120-d*10+g.noise(30))
	aod := math.Max(0.3, 0.8-d*0.2+g.noise(0.4))

	return domain.TempoSample{
		Latitude:   lat,
		Longitude:  lon,
		NO2:        roundTo(no2, 10),
		O3:         roundTo(o3, 10),
		AOD:        roundTo(aod, 100),
		Timestamp:  ts,
		Confidence: 0.85 + g.rng.Float64()*0.1,
	}
}

// noise returns a uniform value in [-span/2, span/2).
func (g *Generator) noise(span float64) float64 {
	return (g.rng.Float64() - 0.5) * span
}

// corners returns south, west, north, east in degrees. The radian round trip
// inside s2 is snapped back to 1e-9 so grid nodes land on exact half degrees.
func corners(r s2.Rect) (float64, float64, float64, float64) {
	lo, hi := r.Lo(), r.Hi()
	return roundTo(lo.Lat.Degrees(), 1e9), roundTo(lo.Lng.Degrees(), 1e9),
		roundTo(hi.Lat.Degrees(), 1e9), roundTo(hi.Lng.Degrees(), 1e9)
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// Layer generates the grid for one date.
func (g *Generator) Layer(date time.Time, bounds s2.Rect) Layer {
	day := date.UTC().Format(time.DateOnly)
	south, west, north, east := corners(bounds)
	return Layer{
		ID:          "tempo_" + day,
		Name:        "TEMPO Data - " + day,
		Description: "Synthetic TEMPO air-quality retrieval",
		Timestamp:   g.clock.Now().UTC().Format(time.RFC3339),
		Bounds:      [2][2]float64{{south, west}, {north, east}},
		Data:        g.Grid(bounds),
	}
}

// History generates one layer per day from start to end inclusive.
func (g *Generator) History(start, end time.Time, bounds s2.Rect) ([]Layer, error) {
	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("history: end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	var layers []Layer
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		layers = append(layers, g.Layer(d, bounds))
	}
	return layers, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
