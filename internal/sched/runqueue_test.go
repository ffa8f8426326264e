package sched

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunQueueOrderAndNext(t *testing.T) {
	rq, tasks := queueOf(t, 120, 110, 130)

	if diff := cmp.Diff([]TaskID{1, 2, 3}, ids(rq.Tasks())); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, rq.Len())
	assert.Same(t, tasks[0], rq.First())
	assert.Same(t, tasks[1], rq.Next(tasks[0]))
	assert.Same(t, tasks[2], rq.Next(tasks[1]))
	assert.Same(t, tasks[0], rq.Next(tasks[2]), "tail wraps to head")
	assert.Same(t, tasks[0], rq.Next(nil))
}

func TestRunQueueEmpty(t *testing.T) {
	rq := NewRunQueue()
	assert.True(t, rq.Empty())
	assert.Nil(t, rq.First())
	assert.Nil(t, rq.Next(NewTask(1, DefaultPrio)))
	assert.Empty(t, rq.Tasks())
}

func TestRunQueueDuplicate(t *testing.T) {
	rq, _ := queueOf(t, 120)
	err := rq.Enqueue(NewTask(1, 100))
	require.Error(t, err)
	assert.Equal(t, 1, rq.Len())
}

func TestRunQueueRemove(t *testing.T) {
	rq, tasks := queueOf(t, 120, 120, 120, 120)

	removed, next, err := rq.Remove(2)
	require.NoError(t, err)
	assert.Same(t, tasks[1], removed)
	assert.Same(t, tasks[2], next)
	assert.Same(t, tasks[2], rq.Next(tasks[0]), "successor skips the removed task")

	_, next, err = rq.Remove(4)
	require.NoError(t, err)
	assert.Same(t, tasks[0], next, "removing the tail returns the head")

	_, ok := rq.Lookup(4)
	assert.False(t, ok)

	_, _, err = rq.Remove(4)
	require.Error(t, err)

	// re-enqueued tasks go to the tail
	require.NoError(t, rq.Enqueue(tasks[1]))
	if diff := cmp.Diff([]TaskID{1, 3, 2}, ids(rq.Tasks())); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestRunQueueRemoveLast(t *testing.T) {
	rq, tasks := queueOf(t, 120)
	removed, next, err := rq.Remove(1)
	require.NoError(t, err)
	assert.Same(t, tasks[0], removed)
	assert.Nil(t, next)
	assert.True(t, rq.Empty())
}

func TestRunQueueSingleSuccessorIsSelf(t *testing.T) {
	rq, tasks := queueOf(t, 120)
	assert.Same(t, tasks[0], rq.Next(tasks[0]))
}

func TestRunQueueEnqueueClampsPriority(t *testing.T) {
	rq := NewRunQueue()
	task := &Task{ID: 1, Prio: MaxPrio + 5}
	require.NoError(t, rq.Enqueue(task))
	assert.Equal(t, MaxPrio-1, task.Prio)

	rq.Curr = task
	got := PickNext(StaticPriority{}, rq, 0)
	assert.Same(t, task, got, "a lone queued task is always selectable")

	low := &Task{ID: 2, Prio: -3}
	require.NoError(t, rq.Enqueue(low))
	assert.Zero(t, low.Prio)
}
