package sched

import "time"

// compile-time type validation
var _ Selector = RoundRobin{}

// RoundRobin runs the task queued after Curr, wrapping at the tail.
// It never mutates any task.
type RoundRobin struct{}

// Select returns the successor of rq.Curr. delta is ignored.
func (RoundRobin) Select(rq *RunQueue, _ time.Duration) *Task {
	if rq.Curr == nil {
		return nil
	}
	return rq.Next(rq.Curr)
}
