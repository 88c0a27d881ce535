package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
)

// MultiLoader fans a batch out to several loaders in order. The first failure
// stops the fan-out; loaders before it have already seen the batch, so each
// loader must tolerate redelivery.
type MultiLoader []BatchLoader

func (m MultiLoader) LoadBatch(ctx context.Context, points []domain.ScenePoint) error {
	for i, l := range m {
		if err := l.LoadBatch(ctx, points); err != nil {
			return fmt.Errorf("loader %d: %w", i, err)
		}
	}
	return nil
}
