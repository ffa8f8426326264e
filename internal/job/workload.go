package job

import "sync"

// Workload tracks how many ticks of CPU each task still needs before it
// exits. Tasks registered with a zero burst never finish, like an idle task.
type Workload struct {
	mu        sync.Mutex
	remaining map[uint64]int64
	ran       map[uint64]int64
}

// NewWorkload returns an empty workload.
func NewWorkload() *Workload {
	return &Workload{
		remaining: make(map[uint64]int64),
		ran:       make(map[uint64]int64),
	}
}

// Add registers a task with the given burst in ticks.
func (w *Workload) Add(id uint64, burstTicks int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if burstTicks < 0 {
		burstTicks = 0
	}
	w.remaining[id] = burstTicks
	w.ran[id] = 0
}

// Consume debits ticks from a task and reports whether it has finished.
// Unknown tasks and zero-burst tasks never finish.
func (w *Workload) Consume(id uint64, ticks int64) (done bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ran[id] += ticks
	left, ok := w.remaining[id]
	if !ok || left == 0 {
		return false
	}
	left -= ticks
	if left <= 0 {
		delete(w.remaining, id)
		return true
	}
	w.remaining[id] = left
	return false
}

// Ran returns the cumulative ticks consumed by a task.
func (w *Workload) Ran(id uint64) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ran[id]
}
