package sched

import "time"

// compile-time type validation
var _ Selector = StaticPriority{}

// StaticPriority runs the task with the numerically smallest Prio.
//
// Ties go to the last tied task in queue order. With a strict comparison
// every tie would resolve to the same head-most task forever and the rest
// would starve.
type StaticPriority struct{}

// Select scans the whole queue. delta is ignored and no task is mutated.
func (StaticPriority) Select(rq *RunQueue, _ time.Duration) *Task {
	var next *Task
	best := MaxPrio
	rq.Each(func(t *Task) {
		if t.Prio <= best {
			next = t
			best = t.Prio
		}
	})
	return next
}
