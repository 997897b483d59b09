package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestGetRandomBounds(t *testing.T) {
	t.Parallel()

	r := NewRandomizer(7)
	values := r.GetRandom(3, 9, 500)
	assert.Len(t, values, 500)

	seen := make(map[int]bool)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 9)
		seen[v] = true
	}
	assert.Len(t, seen, 7, "all values in range are reachable")

	assert.Equal(t, []int{5, 5}, r.GetRandom(5, 5, 2))
	assert.Empty(t, r.GetRandom(0, 10, 0))
}
