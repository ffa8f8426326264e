package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightTable(t *testing.T) {
	assert.Equal(t, 1024, NeutralWeight)
	assert.Equal(t, 88761, WeightOf(MaxRTPrio))
	assert.Equal(t, 15, WeightOf(MaxPrio-1))

	for prio := MaxRTPrio + 1; prio < MaxPrio; prio++ {
		assert.Less(t, WeightOf(prio), WeightOf(prio-1), "weight must decrease at prio %d", prio)
		assert.Positive(t, WeightOf(prio))
	}
}

func TestWeightOfClamps(t *testing.T) {
	assert.Equal(t, WeightOf(MaxRTPrio), WeightOf(0), "real-time priorities clamp to the heaviest weight")
	assert.Equal(t, WeightOf(MaxPrio-1), WeightOf(MaxPrio+10))
}

func TestNiceConversion(t *testing.T) {
	tests := []struct {
		nice int
		prio int
	}{
		{nice: 0, prio: 120},
		{nice: -20, prio: 100},
		{nice: 19, prio: 139},
		{nice: -40, prio: 100},
		{nice: 40, prio: 139},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.prio, NiceToPrio(tt.nice), "nice %d", tt.nice)
	}
	assert.Equal(t, 5, PrioToNice(125))
}

func TestNewTaskClampsPriority(t *testing.T) {
	assert.Equal(t, 0, NewTask(1, -5).Prio)
	assert.Equal(t, MaxPrio-1, NewTask(1, 500).Prio)
	assert.Equal(t, 1024, NewTask(1, DefaultPrio).Weight())
}

func TestScaleDelta(t *testing.T) {
	assert.Equal(t, int64(1000), int64(ScaleDelta(1000, NeutralWeight)))
	assert.Equal(t, int64(2000), int64(ScaleDelta(1000, 512)))
	assert.Equal(t, int64(500), int64(ScaleDelta(1000, 2048)))
	assert.Equal(t, int64(1000), int64(ScaleDelta(1000, 0)), "non-positive weights pass through")
}
