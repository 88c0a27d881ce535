package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
)

// SceneTransformer implements Transformer by running each message through a
// View, with optional reverse-geocoding of place names.
type SceneTransformer struct {
	view     domain.View
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a SceneTransformer for view. Pass a nil geocoder to
// disable place name enrichment.
func NewTransformer(view domain.View, geocoder domain.Geocoder, logger *slog.Logger) *SceneTransformer {
	return &SceneTransformer{
		view:     view,
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *SceneTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.ScenePoint, error) {
	m, err := domain.ParseRawEvent(raw, t.view.Parameter)
	if err != nil {
		return domain.ScenePoint{}, err
	}

	m = domain.EnrichWithPlaceName(ctx, m, t.geocoder, t.logger)

	return domain.StampProcessed(t.view.Point(m, false)), nil
}
