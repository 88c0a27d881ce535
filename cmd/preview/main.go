// Command preview renders a text preview of an animated scene. It owns one
// ViewSession and prints the rotated, pulsed glyphs for each frame, which is
// handy for checking transforms without a 3D client.
//
// Usage:
//
//	go run ./cmd/preview -parameter aqi -frames 5 -interval 250ms
//	go run ./cmd/preview -parameter no2 -raw-json data/mock/raw_measurements.json -top 10
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/scenestore"
	"github.com/couchcryptid/air-scene-etl/internal/tempo"
	"github.com/jonboulle/clockwork"
)

type options struct {
	parameter domain.Parameter
	rawJSON   string
	selected  string
	frames    int
	interval  time.Duration
	top       int
	realtime  bool
	seed      uint64
}

func main() {
	var opts options
	paramName := flag.String("parameter", "aqi", "parameter to render: aqi, no2, o3 or aod")
	flag.StringVar(&opts.rawJSON, "raw-json", "", "raw measurement fixture (defaults to built-in Paris stations or a synthetic grid)")
	flag.StringVar(&opts.selected, "selected", "", "label to draw selected")
	flag.IntVar(&opts.frames, "frames", 3, "number of frames to render")
	flag.DurationVar(&opts.interval, "interval", 500*time.Millisecond, "time between frames")
	flag.IntVar(&opts.top, "top", 8, "number of glyphs to print per frame, largest first")
	flag.BoolVar(&opts.realtime, "realtime", false, "wait for the wall clock between frames")
	flag.Uint64Var(&opts.seed, "seed", 42, "seed for the synthetic grid")
	flag.Parse()

	p, err := domain.ParseParameter(*paramName)
	if err != nil {
		log.Fatal(err)
	}
	opts.parameter = p
	if opts.frames < 1 || opts.interval <= 0 {
		log.Fatal("-frames must be positive and -interval greater than zero")
	}

	if err := run(os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, opts options) error {
	view, err := domain.ViewFor(opts.parameter)
	if err != nil {
		return err
	}

	records, err := loadRecords(opts)
	if err != nil {
		return err
	}

	store := scenestore.New()
	skipped := 0
	for _, rec := range records {
		m, err := domain.MeasurementFromRecord(rec, opts.parameter, time.Time{})
		if err != nil {
			skipped++
			continue
		}
		store.Put(m)
	}
	scene := store.Scene(view, opts.selected)
	fmt.Fprintf(w, "%s scene: %d glyphs (%d records skipped)\n", opts.parameter, len(scene), skipped)

	var clock clockwork.Clock
	var fake *clockwork.FakeClock
	if opts.realtime {
		clock = clockwork.NewRealClock()
	} else {
		fake = clockwork.NewFakeClock()
		clock = fake
	}

	session := domain.NewViewSession(clock)
	ticker := clock.NewTicker(opts.interval)
	defer ticker.Stop()

	for range opts.frames {
		if fake != nil {
			fake.Advance(opts.interval)
		}
		<-ticker.Chan()
		frame := session.NextFrame()
		printFrame(w, session.Frames(), frame, view.Animate(scene, frame), opts.top)
	}
	return nil
}

func loadRecords(opts options) ([]domain.RawRecord, error) {
	if opts.rawJSON != "" {
		data, err := os.ReadFile(opts.rawJSON)
		if err != nil {
			return nil, err
		}
		var recs []domain.RawRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("decode %s: %w", opts.rawJSON, err)
		}
		return recs, nil
	}

	if opts.parameter == domain.ParameterAQI {
		now := time.Now()
		var recs []domain.RawRecord
		for _, s := range tempo.ParisStations() {
			recs = append(recs, s.Record(now))
		}
		return recs, nil
	}

	gen := tempo.NewGenerator(rand.New(rand.NewPCG(opts.seed, opts.seed)), nil)
	samples := gen.Grid(tempo.FranceBounds())
	recs := make([]domain.RawRecord, len(samples))
	for i, s := range samples {
		recs[i] = s.Record()
	}
	return recs, nil
}

func printFrame(w io.Writer, n int, frame domain.FrameState, points []domain.ScenePoint, top int) {
	fmt.Fprintf(w, "\nframe %d  t=%.3fs  rotation=%.4f rad\n", n, frame.ElapsedSeconds(), frame.Rotation)

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return points[order[a]].Scale > points[order[b]].Scale })

	for _, i := range order[:min(top, len(order))] {
		pt := points[i]
		pos := frame.Rotate(pt.Position)
		marker := " "
		if pt.Selected {
			marker = "*"
		}
		pulse := ""
		if pt.Elevated {
			pulse = " pulsing"
		}
		fmt.Fprintf(w, " %s %-24s %8.3f %8.3f %8.3f  scale=%.3f  %s%s\n",
			marker, truncate(pt.Label, 24), pos.X, pos.Y, pos.Z, pt.Scale, pt.Color.Hex(), pulse)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
