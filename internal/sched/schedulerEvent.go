// internal/sched/schedulerEvent.go

package sched

import (
	"time"
)

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusKeep
	StatusFinish
	StatusTick
)

// StatusEvent is emitted every tick or on key actions
type StatusEvent struct {
	Time     time.Time
	Tick     int64
	Kind     StatusKind
	TaskID   TaskID
	Prio     int
	Vruntime time.Duration
	RanTicks int64 // cumulative ticks the task has run
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusKeep:
		return "Keep"
	case StatusFinish:
		return "Finish"
	case StatusTick:
		return "Tick"
	default:
		return "Unknown"
	}
}
