package sched

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSchedulableTask is the cause carried by the invariant panic in PickNext.
var ErrNoSchedulableTask = errors.New("no schedulable task found")

// InvariantError is the panic value raised when selection produced nothing.
// It is never returned as an error; the caller guaranteed a non-empty queue.
type InvariantError struct {
	Policy string
	Queued int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s (policy=%s, queued=%d)", ErrNoSchedulableTask, e.Policy, e.Queued)
}

func (e *InvariantError) Unwrap() error { return ErrNoSchedulableTask }

// PickNext runs sel against rq and returns the task to switch to.
//
// The caller must hold whatever exclusion protects rq, set rq.Curr, and
// ensure the queue is not empty. These preconditions are not checked; if
// they are violated and no task comes back, PickNext panics with an
// *InvariantError.
func PickNext(sel Selector, rq *RunQueue, delta time.Duration) *Task {
	next := sel.Select(rq, delta)
	if next == nil {
		panic(&InvariantError{Policy: selectorName(sel), Queued: rq.Len()})
	}
	return next
}

func selectorName(sel Selector) string {
	switch sel.(type) {
	case RoundRobin, *RoundRobin:
		return PolicyRoundRobin.String()
	case StaticPriority, *StaticPriority:
		return PolicyPriority.String()
	case Fair, *Fair:
		return PolicyFair.String()
	default:
		return fmt.Sprintf("%T", sel)
	}
}
