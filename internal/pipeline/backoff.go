package pipeline

import (
	"context"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// retryDelay is the exponential wait between failed extract or load attempts.
// It drops back to the floor once a stage succeeds.
type retryDelay struct {
	next  time.Duration
	floor time.Duration
	ceil  time.Duration
}

func newRetryDelay(floor, ceil time.Duration) *retryDelay {
	return &retryDelay{next: floor, floor: floor, ceil: ceil}
}

func (r *retryDelay) reset() { r.next = r.floor }

// wait blocks for the current delay and advances it. It returns false if ctx
// ends first.
func (r *retryDelay) wait(ctx context.Context) bool {
	if ctx.Err() != nil || !retry.SleepWithContext(ctx, r.next) {
		return false
	}
	r.next = retry.NextBackoff(r.next, r.ceil)
	return true
}
