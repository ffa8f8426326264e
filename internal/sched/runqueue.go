// internal/sched/runqueue.go

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// RunQueue is the ordered set of ready tasks plus a reference to the task
// that ran last. Queue order is insertion order; positions are stable across
// removals of other tasks.
//
// A RunQueue is not safe for concurrent use. The caller serialises access.
type RunQueue struct {
	// Curr is the task that was running immediately before a selection.
	Curr *Task

	rbt     *redblacktree.Tree // seq -> *Task
	tasks   map[TaskID]*Task
	nextSeq uint64
}

// NewRunQueue returns an empty run-queue.
func NewRunQueue() *RunQueue {
	return &RunQueue{
		rbt:   redblacktree.NewWith(utils.UInt64Comparator),
		tasks: make(map[TaskID]*Task),
	}
}

// Enqueue appends t to the tail of the queue. An out-of-range Prio is
// clamped so every queued task stays selectable.
func (rq *RunQueue) Enqueue(t *Task) error {
	if _, dup := rq.tasks[t.ID]; dup {
		return fmt.Errorf("task %d already queued", t.ID)
	}
	t.Prio = clampPrio(t.Prio)
	rq.nextSeq++
	t.seq = rq.nextSeq
	rq.rbt.Put(t.seq, t)
	rq.tasks[t.ID] = t
	return nil
}

// Remove takes the task with the given id off the queue and returns it with
// its successor in queue order. The successor is nil when the queue becomes
// empty. Curr is left untouched.
func (rq *RunQueue) Remove(id TaskID) (removed, next *Task, err error) {
	t, ok := rq.tasks[id]
	if !ok {
		return nil, nil, fmt.Errorf("no such task %d", id)
	}
	next = rq.Next(t)
	rq.rbt.Remove(t.seq)
	delete(rq.tasks, id)
	if next == t {
		next = nil
	}
	return t, next, nil
}

// Lookup returns the queued task with the given id.
func (rq *RunQueue) Lookup(id TaskID) (*Task, bool) {
	t, ok := rq.tasks[id]
	return t, ok
}

// Len returns the number of queued tasks.
func (rq *RunQueue) Len() int { return rq.rbt.Size() }

// Empty reports whether the queue holds no tasks.
func (rq *RunQueue) Empty() bool { return rq.rbt.Empty() }

// First returns the head of the queue, or nil if the queue is empty.
func (rq *RunQueue) First() *Task {
	node := rq.rbt.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*Task)
}

// Next returns the task following t in queue order, wrapping from the tail
// back to the head. A task that is not queued (including nil) wraps straight
// to the head. Next returns nil only for an empty queue.
func (rq *RunQueue) Next(t *Task) *Task {
	if t == nil || rq.tasks[t.ID] != t {
		return rq.First()
	}
	if node, ok := rq.rbt.Ceiling(t.seq + 1); ok {
		return node.Value.(*Task)
	}
	return rq.First()
}

// Each calls fn for every queued task in queue order.
func (rq *RunQueue) Each(fn func(*Task)) {
	it := rq.rbt.Iterator()
	for it.Next() {
		fn(it.Value().(*Task))
	}
}

// Tasks returns a snapshot of the queue in order.
func (rq *RunQueue) Tasks() []*Task {
	out := make([]*Task, 0, rq.Len())
	rq.Each(func(t *Task) { out = append(out, t) })
	return out
}
