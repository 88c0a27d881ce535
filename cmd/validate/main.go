// Command validate performs end-to-end integrity checks on the mock fixtures
// written by genmock: raw record sanity, scene reproducibility from the raw
// records, per-point rendering invariants and pick round-trips.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/raw_measurements.json \
//	  -scene-dir data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/scenestore"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
)

// processedAt must match genmock so recomputed points compare equal.
var processedAt = time.Date(2025, time.March, 4, 6, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw measurement fixture")
	sceneDir := flag.String("scene-dir", "", "directory containing scene_<parameter>.json fixtures")
	flag.Parse()

	if *rawJSON == "" || *sceneDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *sceneDir); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, sceneDir string) int {
	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	// ── Load all data sources ──
	fmt.Println("=== Air Scene Fixture Validation ===")
	fmt.Println()

	records, err := loadJSON[domain.RawRecord](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}

	scenes := make(map[domain.Parameter][]domain.ScenePoint)
	for _, p := range domain.Parameters() {
		path := filepath.Join(sceneDir, fmt.Sprintf("scene_%s.json", p))
		points, err := loadJSON[domain.ScenePoint](path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load %s scene: %v\n", p, err)
			return 1
		}
		scenes[p] = points
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateRawRecords(records),
		validateReproducible(records, scenes),
		validatePointInvariants(scenes),
		validatePickRoundTrip(scenes),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw", len(records))
	for _, p := range domain.Parameters() {
		fmt.Printf(", %d %s points", len(scenes[p]), p)
	}
	fmt.Println()

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// ── Phase 1: raw records ──

func validateRawRecords(records []domain.RawRecord) *phase {
	p := &phase{name: "Raw record integrity"}
	if len(records) == 0 {
		p.errorf("no raw records")
	}
	for i, rec := range records {
		pf := func(format string, args ...any) {
			p.errorf("record %d (%.4f,%.4f): "+format, append([]any{i, rec.Latitude, rec.Longitude}, args...)...)
		}
		if err := domain.ValidateRecord(rec); err != nil {
			pf("%v", err)
		}
		if _, err := time.Parse(time.RFC3339Nano, rec.Timestamp); err != nil {
			pf("timestamp %q: %v", rec.Timestamp, err)
		}
		readings := 0
		for _, param := range domain.Parameters() {
			v, ok := param.Record(rec)
			if !ok {
				continue
			}
			readings++
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				pf("%s reading %g is not a finite non-negative number", param, v)
			}
		}
		if readings == 0 {
			pf("record carries no reading")
		}
	}
	return p
}

// ── Phase 2: scenes are reproducible from raw records ──

func validateReproducible(records []domain.RawRecord, scenes map[domain.Parameter][]domain.ScenePoint) *phase {
	p := &phase{name: "Scenes reproduce from raw records"}
	opts := cmp.Options{cmpopts.EquateApprox(0, 1e-9)}

	for _, param := range domain.Parameters() {
		view, err := domain.ViewFor(param)
		if err != nil {
			p.errorf("%s: %v", param, err)
			continue
		}
		store := scenestore.New()
		for _, rec := range records {
			if m, err := domain.MeasurementFromRecord(rec, param, time.Time{}); err == nil {
				store.Put(m)
			}
		}
		want := store.Scene(view, "")
		for i := range want {
			want[i] = domain.StampProcessed(want[i])
		}

		got := scenes[param]
		if len(got) != len(want) {
			p.errorf("%s: fixture has %d points, raw records yield %d", param, len(got), len(want))
			continue
		}
		for i := range want {
			if diff := cmp.Diff(want[i], got[i], opts); diff != "" {
				p.errorf("%s point %d (%s) differs (-want +got):\n%s", param, i, want[i].Label, diff)
			}
		}
	}
	return p
}

// ── Phase 3: per-point invariants ──

func validatePointInvariants(scenes map[domain.Parameter][]domain.ScenePoint) *phase {
	p := &phase{name: "Scene point invariants"}
	for _, param := range domain.Parameters() {
		view, err := domain.ViewFor(param)
		if err != nil {
			p.errorf("%s: %v", param, err)
			continue
		}
		labels := map[string]bool{}
		for i := range scenes[param] {
			checkPoint(p, param, view, i, &scenes[param][i])
			pt := &scenes[param][i]
			if labels[pt.Label] {
				p.errorf("%s point %d: duplicate label %q", param, i, pt.Label)
			}
			labels[pt.Label] = true
		}
	}
	return p
}

func checkPoint(p *phase, param domain.Parameter, view domain.View, i int, pt *domain.ScenePoint) {
	pf := func(format string, args ...any) {
		p.errorf("%s point %d (%s): "+format, append([]any{param, i, pt.Label}, args...)...)
	}

	if pt.Label == "" {
		pf("label is empty")
	}
	if pt.Source.Parameter != param {
		pf("source parameter is %s", pt.Source.Parameter)
	}
	if pt.Scale < view.Sizes.MinScale*confidenceFloor-1e-9 || pt.Scale > view.Sizes.MaxScale+1e-9 {
		pf("scale %g outside [%g, %g]", pt.Scale, view.Sizes.MinScale*confidenceFloor, view.Sizes.MaxScale)
	}
	if pt.Intensity < 0 || pt.Intensity > 1 {
		pf("intensity %g outside [0, 1]", pt.Intensity)
	}
	if pt.Elevated != (pt.Source.Value > view.ElevatedAbove) {
		pf("elevated=%t but value %g vs threshold %g", pt.Elevated, pt.Source.Value, view.ElevatedAbove)
	}
	if want := view.Colors.ColorFor(pt.Source.Value); want.Hex() != pt.Color.Hex() {
		pf("color %s, want %s", pt.Color.Hex(), want.Hex())
	}
	if pt.Selected {
		pf("fixture points must not be selected")
	}
	if pt.ProcessedAt.IsZero() {
		pf("processed_at is zero")
	}
}

// confidenceFloor is the smallest confidence weight, reached at confidence 0.
const confidenceFloor = 1.0 / 3

// ── Phase 4: picking a point's own position finds it ──

func validatePickRoundTrip(scenes map[domain.Parameter][]domain.ScenePoint) *phase {
	p := &phase{name: "Pick round-trip"}
	for _, param := range domain.Parameters() {
		points := scenes[param]
		for i := range points {
			idx, ok := domain.Nearest(points[i].Position, points, 0)
			if !ok {
				p.errorf("%s point %d (%s): no match at its own position", param, i, points[i].Label)
				continue
			}
			// An earlier point at the same position wins the tie.
			if idx > i || points[idx].Position != points[i].Position {
				p.errorf("%s point %d (%s): pick returned %d", param, i, points[i].Label, idx)
			}
		}
	}
	return p
}
