// internal/sched/scheduler.go

package sched

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"runqsel/internal/job"
)

// ErrIdle is returned by Step once the run-queue has drained.
var ErrIdle = errors.New("run-queue is empty")

// Scheduler drives a RunQueue from a tick clock: it accounts each tick to the
// running task, retires finished tasks, and asks the configured Selector for
// the next task at the end of every slice.
type Scheduler struct {
	mu         sync.Mutex    // protects the run-queue and counters
	rq         *RunQueue     // ready tasks, rq.Curr is the running one
	sel        Selector      // active policy
	policy     Policy        // for logging only
	work       *job.Workload // remaining burst per task
	tick       time.Duration // wall time charged per tick
	sliceTicks int64         // ticks a task runs before reselection
	maxTicks   int64         // 0 = unbounded
	ticks      int64         // ticks processed so far
	sliceRan   int64         // ticks the current task has run in this slice
	log        logr.Logger

	// logging-related; evMu serialises handleEvent across Run and Add
	evMu      sync.Mutex
	observer  func(StatusEvent)
	csvFile   *os.File
	csvWriter *csv.Writer
}

// New validates cfg and builds a Scheduler with every configured task
// enqueued in order. The first task becomes the running one.
func New(cfg Config, log logr.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	sel, err := NewSelector(cfg.Policy)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		rq:         NewRunQueue(),
		sel:        sel,
		policy:     cfg.Policy,
		work:       job.NewWorkload(),
		tick:       time.Duration(cfg.TickMS) * time.Millisecond,
		sliceTicks: int64(cfg.SliceTicks),
		maxTicks:   cfg.MaxTicks,
		log:        log.WithValues("policy", cfg.Policy.String()),
	}
	for _, tc := range cfg.Tasks {
		if err := s.rq.Enqueue(NewTask(tc.ID, NiceToPrio(tc.Nice))); err != nil {
			return nil, err
		}
		s.work.Add(uint64(tc.ID), tc.BurstTicks)
	}
	s.rq.Curr = s.rq.First()
	return s, nil
}

// Add enqueues a task at the tail of the run-queue. A burst of zero means
// the task never finishes.
func (s *Scheduler) Add(t *Task, burstTicks int64) error {
	s.mu.Lock()
	if err := s.rq.Enqueue(t); err != nil {
		s.mu.Unlock()
		return err
	}
	s.work.Add(uint64(t.ID), burstTicks)
	if s.rq.Curr == nil {
		s.rq.Curr = t
		s.sliceRan = 0
	}
	ev := s.event(StatusEnqueue, t)
	s.mu.Unlock() // NOTE: unlock before handling so observers may call back in

	s.handleEvent(ev)
	return nil
}

// Curr returns the running task.
func (s *Scheduler) Curr() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rq.Curr
}

// Ticks returns the number of ticks processed.
func (s *Scheduler) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// OnEvent registers fn to receive every event, including those from Add.
// Calls to fn are serialised. Must be called before Run or Add.
func (s *Scheduler) OnEvent(fn func(StatusEvent)) { s.observer = fn }

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before Run().
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv log: %w", err)
	}
	w := csv.NewWriter(f)

	// write header
	if err := w.Write([]string{"timestamp", "tick", "event", "task_id", "prio", "ran_ticks", "vruntime_ns"}); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	w.Flush()
	s.csvFile = f
	s.csvWriter = w
	return nil
}

// Step processes one tick and returns the events it produced. It returns
// ErrIdle when there is nothing left to run.
func (s *Scheduler) Step() ([]StatusEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	curr := s.rq.Curr
	if curr == nil || s.rq.Empty() {
		return []StatusEvent{s.event(StatusIdle, nil)}, ErrIdle
	}

	s.ticks++
	s.sliceRan++
	done := s.work.Consume(uint64(curr.ID), 1)
	if !done && s.sliceRan < s.sliceTicks {
		return []StatusEvent{s.event(StatusTick, curr)}, nil
	}

	// end of slice or exit: reschedule
	var events []StatusEvent
	next := PickNext(s.sel, s.rq, time.Duration(s.sliceRan)*s.tick)
	if done {
		_, succ, err := s.rq.Remove(curr.ID)
		if err != nil {
			return events, err
		}
		events = append(events, s.event(StatusFinish, curr))
		if next == curr {
			if succ == nil {
				s.rq.Curr = nil
				s.sliceRan = 0
				return append(events, s.event(StatusIdle, nil)), ErrIdle
			}
			// the finished task won; pick again among the survivors
			s.rq.Curr = succ
			next = PickNext(s.sel, s.rq, 0)
		}
	}

	switch {
	case next == curr:
		events = append(events, s.event(StatusKeep, next))
	case !done:
		events = append(events, s.event(StatusPreempt, curr), s.event(StatusDispatch, next))
	default:
		events = append(events, s.event(StatusDispatch, next))
	}
	s.rq.Curr = next
	s.sliceRan = 0
	return events, nil
}

// Run drives Step from a tick clock until ctx is cancelled, MaxTicks is
// reached, or the run-queue drains. Events are logged as they happen.
func (s *Scheduler) Run(ctx context.Context) error {
	clock := NewTickClock(256) // buffer size for tick events
	clock.Start(s.tick)
	defer clock.Stop()
	defer s.closeCSV()

	s.log.Info("scheduler started", "tasks", s.rq.Len(), "tick", s.tick, "sliceTicks", s.sliceTicks)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped", "ticks", s.Ticks(), "clockTicks", clock.Count(), "reason", ctx.Err())
			return nil
		case _, ok := <-clock.Ch:
			if !ok {
				return nil
			}
		}

		events, err := s.Step()
		for _, ev := range events {
			s.handleEvent(ev)
		}
		if errors.Is(err, ErrIdle) {
			s.log.Info("run-queue drained", "ticks", s.Ticks(), "clockTicks", clock.Count())
			return nil
		}
		if err != nil {
			return err
		}
		if s.maxTicks > 0 && s.Ticks() >= s.maxTicks {
			s.log.Info("tick limit reached", "ticks", s.Ticks(), "clockTicks", clock.Count())
			return nil
		}
	}
}

func (s *Scheduler) event(kind StatusKind, t *Task) StatusEvent {
	ev := StatusEvent{
		Time: time.Now(),
		Tick: s.ticks,
		Kind: kind,
	}
	if t != nil {
		ev.TaskID = t.ID
		ev.Prio = t.Prio
		ev.Vruntime = t.SE.Vruntime
		ev.RanTicks = s.work.Ran(uint64(t.ID))
	}
	return ev
}

func (s *Scheduler) handleEvent(ev StatusEvent) {
	s.evMu.Lock()
	defer s.evMu.Unlock()

	if s.observer != nil {
		s.observer(ev)
	}

	// tick events are frequent, keep them at debug verbosity
	log := s.log
	if ev.Kind == StatusTick {
		log = log.V(1)
	}
	log.Info(ev.Kind.String(),
		"tick", ev.Tick,
		"task", ev.TaskID,
		"prio", ev.Prio,
		"nice", PrioToNice(ev.Prio),
		"ranTicks", ev.RanTicks,
		"vruntime", ev.Vruntime,
	)

	// CSV output
	if s.csvWriter != nil {
		rec := []string{
			ev.Time.Format(time.RFC3339Nano),
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			strconv.FormatUint(uint64(ev.TaskID), 10),
			strconv.Itoa(ev.Prio),
			strconv.FormatInt(ev.RanTicks, 10),
			strconv.FormatInt(int64(ev.Vruntime), 10),
		}
		if err := s.csvWriter.Write(rec); err != nil {
			s.log.Error(err, "csv write failed")
		}
		s.csvWriter.Flush()
	}
}

func (s *Scheduler) closeCSV() {
	s.evMu.Lock()
	defer s.evMu.Unlock()

	if s.csvFile == nil {
		return
	}
	s.csvWriter.Flush()
	s.csvFile.Close()
	s.csvFile, s.csvWriter = nil, nil
}
