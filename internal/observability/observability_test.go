package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.MessagesConsumed.Add(3)
	a.PickRequests.WithLabelValues("hit").Inc()

	assert.InDelta(t, 3, testutil.ToFloat64(a.MessagesConsumed), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.MessagesConsumed), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(a.PickRequests.WithLabelValues("hit")), 0)
}
