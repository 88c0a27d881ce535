package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SceneSource supplies the current measurement snapshot.
type SceneSource interface {
	Snapshot() []domain.GeoMeasurement
	Get(label string) (domain.GeoMeasurement, bool)
}

// SceneOptions configures the scene routes.
type SceneOptions struct {
	Source          SceneSource
	View            domain.View
	PickMaxDistance float64
	Metrics         *observability.Metrics
}

// Server exposes health, readiness, metrics and scene HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	scenes     SceneOptions
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /scene routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, scenes SceneOptions, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		scenes: scenes,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /scene", s.handleScene)
	mux.HandleFunc("GET /scene/pick", s.handlePick)
	mux.HandleFunc("GET /scene/stats", s.handleStats)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
