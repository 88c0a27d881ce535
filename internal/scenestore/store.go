// Package scenestore keeps the latest measurement per label so scenes can be
// rebuilt wholesale on demand.
package scenestore

import (
	"context"
	"sync"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Store is a concurrency-safe, insertion-ordered map of label to measurement.
// It implements pipeline.BatchLoader.
type Store struct {
	mu     sync.RWMutex
	order  []string
	latest map[string]domain.GeoMeasurement
	labels prometheus.Gauge
}

// Option configures a Store.
type Option func(*Store)

// WithLabelGauge reports the number of distinct labels held on g.
func WithLabelGauge(g prometheus.Gauge) Option {
	return func(s *Store) { s.labels = g }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{latest: make(map[string]domain.GeoMeasurement)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadBatch records the source measurement of each point. A label seen before
// keeps its original position and takes the newer reading.
func (s *Store) LoadBatch(_ context.Context, points []domain.ScenePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range points {
		s.put(points[i].Source)
	}
	return nil
}

// Put records a single measurement.
func (s *Store) Put(m domain.GeoMeasurement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(m)
}

func (s *Store) put(m domain.GeoMeasurement) {
	if _, ok := s.latest[m.Label]; !ok {
		s.order = append(s.order, m.Label)
		if s.labels != nil {
			s.labels.Set(float64(len(s.order)))
		}
	}
	s.latest[m.Label] = m
}

// Snapshot returns a copy of every measurement in first-seen order.
func (s *Store) Snapshot() []domain.GeoMeasurement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GeoMeasurement, len(s.order))
	for i, label := range s.order {
		out[i] = s.latest[label]
	}
	return out
}

// Get returns the measurement stored under label.
func (s *Store) Get(label string) (domain.GeoMeasurement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.latest[label]
	return m, ok
}

// Len returns the number of labels held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Scene rebuilds the full scene for view from the current snapshot.
func (s *Store) Scene(view domain.View, selected string) []domain.ScenePoint {
	return domain.BuildScene(view, s.Snapshot(), selected)
}
