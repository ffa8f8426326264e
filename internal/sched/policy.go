// internal/sched/policy.go

package sched

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoPolicy is returned when no scheduling policy was configured.
	ErrNoPolicy = errors.New("no scheduling policy selected")
	// ErrUnknownPolicy is returned for a policy name or value outside the known set.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
)

// Policy enumerates the scheduling strategies. Exactly one is active for a
// Scheduler; the zero value selects none and is rejected by NewSelector.
type Policy int

const (
	PolicyNone Policy = iota
	PolicyRoundRobin
	PolicyPriority
	PolicyFair
)

var policyNames = map[Policy]string{
	PolicyRoundRobin: "rr",
	PolicyPriority:   "priority",
	PolicyFair:       "cfs",
}

// Policies returns every selectable policy.
func Policies() []Policy {
	return []Policy{PolicyRoundRobin, PolicyPriority, PolicyFair}
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	if p == PolicyNone {
		return "none"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy resolves a policy name. A few long-form aliases are accepted.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PolicyNone, ErrNoPolicy
	case "rr", "round-robin", "roundrobin":
		return PolicyRoundRobin, nil
	case "priority", "prio":
		return PolicyPriority, nil
	case "cfs", "fair":
		return PolicyFair, nil
	default:
		return PolicyNone, fmt.Errorf("%w %q", ErrUnknownPolicy, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value leaves
// the policy unset so Validate can report it.
func (p *Policy) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*p = PolicyNone
		return nil
	}
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Selector chooses the next task to run from rq. Implementations may return
// nil only when rq violates the caller contract (empty queue or nil Curr);
// PickNext turns that into a fatal invariant violation.
type Selector interface {
	// Select picks the next task. delta is the execution time consumed by
	// rq.Curr since it last gained the CPU.
	Select(rq *RunQueue, delta time.Duration) *Task
}

// NewSelector returns the selector for p.
func NewSelector(p Policy) (Selector, error) {
	switch p {
	case PolicyNone:
		return nil, ErrNoPolicy
	case PolicyRoundRobin:
		return RoundRobin{}, nil
	case PolicyPriority:
		return StaticPriority{}, nil
	case PolicyFair:
		return Fair{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
}
