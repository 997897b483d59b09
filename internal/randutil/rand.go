// Package randutil provides deterministic randomness for dealing and bots.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG seeds are derived from the one value so every call site gets
// reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Randomizer draws uniform integers from a seeded generator. It is safe for
// sequential reuse across hands but not for concurrent use.
type Randomizer struct {
	rng *rand.Rand
}

// NewRandomizer returns a Randomizer seeded with seed.
func NewRandomizer(seed int64) *Randomizer {
	return &Randomizer{rng: New(seed)}
}

// GetRandom returns count integers drawn uniformly from [min, max].
func (r *Randomizer) GetRandom(min, max, count int) []int {
	if max < min {
		min, max = max, min
	}
	out := make([]int, count)
	span := max - min + 1
	for i := range out {
		out[i] = min + r.rng.IntN(span)
	}
	return out
}

// Rand exposes the underlying generator for callers that need floats.
func (r *Randomizer) Rand() *rand.Rand {
	return r.rng
}
