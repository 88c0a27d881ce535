package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/golang/geo/r3"
)

type sceneResponse struct {
	Parameter domain.Parameter    `json:"parameter"`
	Count     int                 `json:"count"`
	Points    []domain.ScenePoint `json:"points"`
}

type pickResponse struct {
	Match    bool               `json:"match"`
	Index    int                `json:"index"`
	Distance float64            `json:"distance"`
	Point    *domain.ScenePoint `json:"point,omitempty"`
}

type bandCount struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type statsResponse struct {
	Parameter domain.Parameter `json:"parameter"`
	Count     int              `json:"count"`
	Elevated  int              `json:"elevated"`
	Values    domain.Summary   `json:"values"`
	Bands     []bandCount      `json:"bands,omitempty"`
}

// handleScene rebuilds the whole scene from the current snapshot. Selecting a
// label the store has never seen is a 404.
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("selected")
	if selected != "" {
		if _, ok := s.scenes.Source.Get(selected); !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown label %q", selected))
			return
		}
	}
	points := domain.BuildScene(s.scenes.View, s.scenes.Source.Snapshot(), selected)
	sharedobs.WriteJSON(w, http.StatusOK, sceneResponse{
		Parameter: s.scenes.View.Parameter,
		Count:     len(points),
		Points:    points,
	})
}

// handlePick resolves a 3D pick position to the nearest scene point.
func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	pick, maxDistance, err := s.parsePick(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	points := domain.BuildScene(s.scenes.View, s.scenes.Source.Snapshot(), "")
	idx, ok := domain.Nearest(pick, points, maxDistance)
	if !ok {
		s.scenes.Metrics.PickRequests.WithLabelValues("miss").Inc()
		sharedobs.WriteJSON(w, http.StatusNotFound, pickResponse{Match: false, Index: -1})
		return
	}

	s.scenes.Metrics.PickRequests.WithLabelValues("hit").Inc()
	hit := points[idx]
	sharedobs.WriteJSON(w, http.StatusOK, pickResponse{
		Match:    true,
		Index:    idx,
		Distance: pick.Distance(hit.Position),
		Point:    &hit,
	})
}

func (s *Server) parsePick(r *http.Request) (r3.Vector, float64, error) {
	q := r.URL.Query()
	var coords [3]float64
	for i, key := range []string{"x", "y", "z"} {
		v, err := parseFiniteFloat(q.Get(key))
		if err != nil {
			return r3.Vector{}, 0, fmt.Errorf("query parameter %s: %w", key, err)
		}
		coords[i] = v
	}

	maxDistance := s.scenes.PickMaxDistance
	if raw := q.Get("max"); raw != "" {
		v, err := parseFiniteFloat(raw)
		if err != nil || v <= 0 {
			return r3.Vector{}, 0, errors.New("query parameter max must be a positive number")
		}
		maxDistance = v
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, maxDistance, nil
}

// handleStats summarizes the current snapshot for the active parameter.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	view := s.scenes.View
	measurements := s.scenes.Source.Snapshot()

	resp := statsResponse{
		Parameter: view.Parameter,
		Count:     len(measurements),
		Values:    domain.SummarizeMeasurements(measurements),
	}
	for _, m := range measurements {
		if m.Value > view.ElevatedAbove {
			resp.Elevated++
		}
	}

	if table, ok := view.Colors.(*domain.BandTable); ok {
		bands := table.Bands()
		resp.Bands = make([]bandCount, len(bands))
		for i, b := range bands {
			resp.Bands[i] = bandCount{Label: b.Label, Color: b.Color.Hex()}
		}
		for _, m := range measurements {
			band := table.Band(m.Value)
			for i := range resp.Bands {
				if resp.Bands[i].Label == band.Label {
					resp.Bands[i].Count++
					break
				}
			}
		}
	}

	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func parseFiniteFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
