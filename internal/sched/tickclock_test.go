package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickClockCounts(t *testing.T) {
	clock := NewTickClock(1)
	clock.Start(time.Millisecond)

	for i := 0; i < 3; i++ {
		select {
		case <-clock.Ch:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for tick")
		}
	}
	clock.Stop()
	clock.Stop() // idempotent

	assert.GreaterOrEqual(t, clock.Count(), int64(3))

	// Ch is closed once the clock goroutine exits
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-clock.Ch:
			if !ok {
				return
			}
		case <-deadline:
			require.Fail(t, "tick channel was not closed after Stop")
		}
	}
}
