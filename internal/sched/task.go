package sched

import "time"

// TaskID uniquely identifies a task in the run-queue.
type TaskID uint64

// SchedEntity holds the per-task accounting used by the fair policy.
type SchedEntity struct {
	Vruntime time.Duration // weighted runtime; only ever grows
}

// Task represents one schedulable task unit.
type Task struct {
	ID   TaskID
	Prio int // 0 - 139, smaller is preferred; DefaultPrio is neutral. Clamped on Enqueue
	SE   SchedEntity

	seq uint64 // position in the run-queue, assigned on Enqueue
}

// NewTask creates a task with the given static priority and zero vruntime.
func NewTask(id TaskID, prio int) *Task {
	return &Task{
		ID:   id,
		Prio: clampPrio(prio),
	}
}

// clampPrio keeps a static priority within the legal region [0, MaxPrio).
func clampPrio(prio int) int {
	if prio < 0 {
		return 0
	} else if prio >= MaxPrio {
		return MaxPrio - 1
	}
	return prio
}

// Weight returns the load weight derived from the task's priority.
func (t *Task) Weight() int { return WeightOf(t.Prio) }

// charge adds runtime to the task's vruntime. Negative deltas are dropped so
// vruntime stays non-decreasing.
func (t *Task) charge(d time.Duration) {
	if d > 0 {
		t.SE.Vruntime += d
	}
}
