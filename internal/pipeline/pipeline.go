// Package pipeline runs the extract-transform-load loop that turns raw
// measurements into scene points.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw event into a scene point.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.ScenePoint, error)
}

// BatchLoader writes scene points to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, points []domain.ScenePoint) error
}

// Pipeline moves batches from an extractor through a transformer into a loader.
// Offsets are committed only for events that were loaded or that can never be
// transformed.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
	ready       atomic.Bool
}

// New wires the three stages together.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness reports ready once any scene point has been loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.ready.Load() {
		return nil
	}
	return errors.New("no scene points loaded yet")
}

// Run processes batches until ctx is cancelled. Source and sink failures are
// retried with exponential backoff and never end the loop. A batch that fails
// to load is retried as is; the next batch is not read until it succeeds.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := newRetryDelay(initialBackoff, maxBackoff)
	for ctx.Err() == nil {
		if !p.step(ctx, backoff) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// batch tracks one extracted batch through transform and load.
type batch struct {
	points   []domain.ScenePoint
	accepted []domain.RawEvent
	skipped  int
	elevated int
}

// step runs a single cycle and reports whether the loop should continue.
func (p *Pipeline) step(ctx context.Context, backoff *retryDelay) bool {
	start := time.Now()

	raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case err != nil && ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("extract batch failed", "error", err)
		return backoff.wait(ctx)
	case len(raws) == 0:
		return true
	}
	backoff.reset()
	p.metrics.MessagesConsumed.Add(float64(len(raws)))
	p.metrics.BatchSize.Observe(float64(len(raws)))

	b := p.transform(ctx, raws)
	if len(b.points) == 0 {
		return true
	}

	if !p.load(ctx, b.points, backoff) {
		return false
	}
	for _, raw := range b.accepted {
		p.commit(ctx, raw)
	}

	p.metrics.MessagesProduced.Add(float64(len(b.points)))
	p.metrics.ElevatedPoints.Add(float64(b.elevated))
	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Debug("batch loaded",
		"points", len(b.points),
		"elevated", b.elevated,
		"skipped", b.skipped,
		"duration", time.Since(start),
	)
	return true
}

// load retries the same points with backoff until the loader accepts them.
// Moving on would let a later commit skip past offsets that were never
// loaded. It returns false only when ctx ends first.
func (p *Pipeline) load(ctx context.Context, points []domain.ScenePoint, backoff *retryDelay) bool {
	for {
		err := p.loader.LoadBatch(ctx, points)
		if err == nil {
			backoff.reset()
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load batch failed, retrying", "error", err, "batch_size", len(points))
		if !backoff.wait(ctx) {
			return false
		}
	}
}

// transform converts every event in raws. Events that fail are committed
// straight away so a poison message cannot stall its partition.
func (p *Pipeline) transform(ctx context.Context, raws []domain.RawEvent) batch {
	b := batch{
		points:   make([]domain.ScenePoint, 0, len(raws)),
		accepted: make([]domain.RawEvent, 0, len(raws)),
	}
	for _, raw := range raws {
		point, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("skipping untransformable message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			b.skipped++
			continue
		}
		if point.Elevated {
			b.elevated++
		}
		b.points = append(b.points, point)
		b.accepted = append(b.accepted, raw)
	}
	return b
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
	}
}
