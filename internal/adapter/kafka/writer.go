package kafka

import (
	"context"
	"log/slog"
	"sort"

	"github.com/couchcryptid/air-scene-etl/internal/config"
	"github.com/couchcryptid/air-scene-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces scene points to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes scene points in a single WriteMessages
// call. Points are keyed by label so every update to a label lands on the
// same partition.
func (w *Writer) LoadBatch(ctx context.Context, points []domain.ScenePoint) error {
	if len(points) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(points))
	for i := range points {
		msg, err := serializeToMessage(points[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ScenePoint into a Kafka message.
func serializeToMessage(point domain.ScenePoint) (kafkago.Message, error) {
	out, err := domain.SerializeScenePoint(point)
	if err != nil {
		return kafkago.Message{}, err
	}
	keys := make([]string, 0, len(out.Headers))
	for k := range out.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	headers := make([]kafkago.Header, len(keys))
	for i, k := range keys {
		headers[i] = kafkago.Header{Key: k, Value: []byte(out.Headers[k])}
	}
	return kafkago.Message{
		Key:     out.Key,
		Value:   out.Value,
		Headers: headers,
	}, nil
}
