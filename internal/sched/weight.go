// internal/sched/weight.go

package sched

// Priority layout. Values below MaxRTPrio belong to real-time classes; the
// 40 user priorities [MaxRTPrio, MaxPrio) map to nice -20..19.
const (
	MaxRTPrio   = 100
	MaxPrio     = 140
	DefaultPrio = MaxRTPrio + 20 // nice 0

	MinNice = -20
	MaxNice = 19
)

// prioToWeight maps user priority (nice+20) to a load weight. Each nice step
// is roughly a 10% change in CPU share. Never mutated.
var prioToWeight = [40]int{
	/* -20 */ 88761, 71755, 56483, 46273, 36291,
	/* -15 */ 29154, 23254, 18705, 14949, 11916,
	/* -10 */ 9548, 7620, 6100, 4904, 3906,
	/*  -5 */ 3121, 2501, 1991, 1586, 1277,
	/*   0 */ 1024, 820, 655, 526, 423,
	/*   5 */ 335, 272, 215, 172, 137,
	/*  10 */ 110, 87, 70, 56, 45,
	/*  15 */ 36, 29, 23, 18, 15,
}

// NeutralWeight is the weight of a nice-0 task, the unscaled baseline for
// virtual runtime charging.
var NeutralWeight = WeightOf(DefaultPrio)

// userPrio converts a static priority into an index into the weight table.
func userPrio(prio int) int { return prio - MaxRTPrio }

// WeightOf returns the load weight for a static priority. Priorities outside
// the user range are clamped to the nearest table entry.
func WeightOf(prio int) int {
	idx := userPrio(prio)
	if idx < 0 {
		idx = 0
	} else if idx >= len(prioToWeight) {
		idx = len(prioToWeight) - 1
	}
	return prioToWeight[idx]
}

// NiceToPrio converts a nice value to a static priority, clamping to [-20, 19].
func NiceToPrio(nice int) int {
	if nice < MinNice {
		nice = MinNice
	} else if nice > MaxNice {
		nice = MaxNice
	}
	return DefaultPrio + nice
}

// PrioToNice is the inverse of NiceToPrio for user priorities.
func PrioToNice(prio int) int { return prio - DefaultPrio }
