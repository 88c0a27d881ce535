//go:build integration

package integration_test

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/tempo"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

var fixtureDate = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startKafka runs a single-node KRaft broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	kc, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("air-scene-test"),
	)
	testcontainers.CleanupContainer(t, kc)
	require.NoError(t, err, "start kafka container")

	brokers, err := kc.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// loadMockData returns the Paris stations followed by a small synthetic
// TEMPO grid, in the order genmock writes them.
func loadMockData(t *testing.T) []domain.RawRecord {
	t.Helper()
	var records []domain.RawRecord
	for _, s := range tempo.ParisStations() {
		records = append(records, s.Record(fixtureDate.Add(8*time.Hour)))
	}

	gen := tempo.NewGenerator(rand.New(rand.NewPCG(42, 42)), clockwork.NewFakeClockAt(fixtureDate.Add(13*time.Hour)))
	for _, s := range gen.Grid(tempo.Bounds(48, 2, 49, 3)) {
		records = append(records, s.Record())
	}
	require.Len(t, records, 9+9)
	return records
}
