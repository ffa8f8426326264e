// internal/sched/fair.go

package sched

import "time"

// compile-time type validation
var _ Selector = Fair{}

// Fair is the weighted fair (CFS-style) policy. It is the only policy with a
// side effect: Select first charges rq.Curr for the time it just ran, scaled
// inversely by its weight, and then picks the smallest vruntime. Callers that
// want the two steps apart use Charge followed by Pick.
type Fair struct{}

// Select charges rq.Curr with delta and returns the task with the smallest
// vruntime. Curr wins ties.
func (f Fair) Select(rq *RunQueue, delta time.Duration) *Task {
	if rq.Curr == nil {
		return nil
	}
	f.Charge(rq.Curr, delta)
	return f.Pick(rq)
}

// Charge adds delta to t's vruntime, scaled by NeutralWeight/weight. A lighter
// task is charged more and so runs less often.
func (Fair) Charge(t *Task, delta time.Duration) {
	t.charge(ScaleDelta(delta, t.Weight()))
}

// Pick returns the task with the strictly smallest vruntime, starting from
// rq.Curr. It does not charge anything.
func (Fair) Pick(rq *RunQueue) *Task {
	next := rq.Curr
	if next == nil {
		return nil
	}
	rq.Each(func(t *Task) {
		if t.SE.Vruntime < next.SE.Vruntime {
			next = t
		}
	})
	return next
}

// ScaleDelta converts wall execution time into virtual time for a task of the
// given weight. The neutral weight passes delta through unchanged; any other
// weight goes through float scaling truncated to whole nanoseconds.
func ScaleDelta(delta time.Duration, weight int) time.Duration {
	if weight == NeutralWeight || weight <= 0 {
		return delta
	}
	factor := float64(NeutralWeight) / float64(weight)
	return time.Duration(float64(delta) * factor)
}
