package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkloadConsume(t *testing.T) {
	w := NewWorkload()
	w.Add(1, 3)
	w.Add(2, 0)

	assert.False(t, w.Consume(1, 1))
	assert.False(t, w.Consume(1, 1))
	assert.True(t, w.Consume(1, 1))
	assert.Equal(t, int64(3), w.Ran(1))

	for i := 0; i < 100; i++ {
		assert.False(t, w.Consume(2, 1), "zero burst never finishes")
	}
	assert.False(t, w.Consume(42, 1), "unknown task never finishes")
}

func TestWorkloadOvershoot(t *testing.T) {
	w := NewWorkload()
	w.Add(7, 2)
	assert.True(t, w.Consume(7, 5))
	assert.Equal(t, int64(5), w.Ran(7))
}
