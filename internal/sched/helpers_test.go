package sched

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// queueOf builds a run-queue with tasks 1..n carrying the given priorities.
// Curr is left unset.
func queueOf(t *testing.T, prios ...int) (*RunQueue, []*Task) {
	t.Helper()
	rq := NewRunQueue()
	tasks := make([]*Task, 0, len(prios))
	for i, p := range prios {
		task := NewTask(TaskID(i+1), p)
		require.NoError(t, rq.Enqueue(task))
		tasks = append(tasks, task)
	}
	return rq, tasks
}

func ids(tasks []*Task) []TaskID {
	out := make([]TaskID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// requireInvariantPanic asserts fn panics with an *InvariantError.
func requireInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic but did not get one")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		var inv *InvariantError
		require.True(t, errors.As(err, &inv), "panic value %T is not *InvariantError", r)
		require.ErrorIs(t, err, ErrNoSchedulableTask)
	}()
	fn()
}
