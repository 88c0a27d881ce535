// Command genmock generates mock data fixtures for the scene pipeline: raw
// source-topic records (Paris AQI stations plus a synthetic TEMPO grid) and
// the scene points each view produces from them. It uses the actual domain
// package so the fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out-dir data/mock \
//	  -date 2025-03-03 -days 3 -region france -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/scenestore"
	"github.com/couchcryptid/air-scene-etl/internal/tempo"
	"github.com/golang/geo/s2"
	"github.com/jonboulle/clockwork"
)

// processedAt is the fixed processing time stamped on fixture scene points.
var processedAt = time.Date(2025, time.March, 4, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "directory for generated fixtures")
	dateStr := flag.String("date", "2025-03-03", "last day of the generated history (YYYY-MM-DD)")
	days := flag.Int("days", 1, "number of daily TEMPO layers to generate")
	region := flag.String("region", "france", "grid coverage: france or europe")
	seed := flag.Uint64("seed", 42, "random seed for reproducible grids")
	flag.Parse()

	if *days < 1 {
		return fmt.Errorf("-days must be at least 1")
	}
	end, err := time.Parse(time.DateOnly, *dateStr)
	if err != nil {
		return fmt.Errorf("invalid -date: %w", err)
	}
	bounds, err := regionBounds(*region)
	if err != nil {
		return err
	}

	// Fixed clocks for reproducible timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)
	gen := tempo.NewGenerator(
		rand.New(rand.NewPCG(*seed, *seed)),
		clockwork.NewFakeClockAt(end.Add(13*time.Hour)),
	)

	layers, err := gen.History(end.AddDate(0, 0, -(*days-1)), end, bounds)
	if err != nil {
		return err
	}

	records := stationRecords(end.Add(8 * time.Hour))
	for _, l := range layers {
		for _, s := range l.Data {
			records = append(records, s.Record())
		}
		log.Printf("%s: %d samples", l.ID, len(l.Data))
	}
	log.Printf("total: %d raw records", len(records))

	if err := writeJSON(filepath.Join(*outDir, "raw_measurements.json"), records); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	if err := writeJSON(filepath.Join(*outDir, "tempo_layers.json"), layers); err != nil {
		return fmt.Errorf("writing layer fixture: %w", err)
	}

	for _, p := range domain.Parameters() {
		points, err := buildScene(p, records)
		if err != nil {
			return fmt.Errorf("building %s scene: %w", p, err)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("scene_%s.json", p))
		if err := writeJSON(path, points); err != nil {
			return fmt.Errorf("writing %s scene: %w", p, err)
		}
		log.Printf("wrote %s (%d points)", path, len(points))
		printSceneStats(p, points)
	}

	printLayerStats(layers)
	return nil
}

func regionBounds(name string) (s2.Rect, error) {
	switch name {
	case "france":
		return tempo.FranceBounds(), nil
	case "europe":
		return tempo.EuropeBounds(), nil
	default:
		return s2.EmptyRect(), fmt.Errorf("unknown -region %q (want france or europe)", name)
	}
}

func stationRecords(ts time.Time) []domain.RawRecord {
	stations := tempo.ParisStations()
	recs := make([]domain.RawRecord, len(stations))
	for i, s := range stations {
		recs[i] = s.Record(ts)
	}
	return recs
}

// buildScene renders the latest record per label with the stock view for p.
// Records lacking p are skipped, as the pipeline would skip them.
func buildScene(p domain.Parameter, records []domain.RawRecord) ([]domain.ScenePoint, error) {
	view, err := domain.ViewFor(p)
	if err != nil {
		return nil, err
	}

	store := scenestore.New()
	for _, rec := range records {
		m, err := domain.MeasurementFromRecord(rec, p, time.Time{})
		if err != nil {
			continue
		}
		store.Put(m)
	}

	points := store.Scene(view, "")
	for i := range points {
		points[i] = domain.StampProcessed(points[i])
	}
	return points, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printSceneStats(p domain.Parameter, points []domain.ScenePoint) {
	ms := make([]domain.GeoMeasurement, len(points))
	var elevated int
	colors := map[string]int{}
	for i := range points {
		ms[i] = points[i].Source
		if points[i].Elevated {
			elevated++
		}
		colors[points[i].Color.Hex()]++
	}
	s := domain.SummarizeMeasurements(ms)

	fmt.Printf("\n=== %s scene ===\n", p)
	fmt.Printf("Points: %d, elevated: %d\n", len(points), elevated)
	fmt.Printf("Value: avg=%.2f min=%.2f max=%.2f\n", s.Avg, s.Min, s.Max)
	if p != domain.ParameterAQI {
		return
	}

	hexes := make([]string, 0, len(colors))
	for h := range colors {
		hexes = append(hexes, h)
	}
	sort.Strings(hexes)
	fmt.Print("Colors:")
	for _, h := range hexes {
		fmt.Printf(" %s=%d", h, colors[h])
	}
	fmt.Println()
}

func printLayerStats(layers []tempo.Layer) {
	fmt.Println("\n=== TEMPO layers ===")
	for _, l := range layers {
		st := domain.Summarize(l.Data)
		fmt.Printf("%s: n=%d no2=%.1f [%.1f,%.1f] o3=%.1f [%.1f,%.1f] aod=%.2f [%.2f,%.2f] conf=%.3f\n",
			l.ID, st.Count,
			st.NO2.Avg, st.NO2.Min, st.NO2.Max,
			st.O3.Avg, st.O3.Min, st.O3.Max,
			st.AOD.Avg, st.AOD.Min, st.AOD.Max,
			st.Confidence.Avg)
	}
}
