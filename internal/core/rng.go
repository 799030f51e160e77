package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewEntropyRNG creates an RNG seeded from the runtime's entropy source. Two
// calls never share a sequence.
func NewEntropyRNG() *RNG {
	return &RNG{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// SeededRNG returns NewRNG(seed), or an entropy RNG when seed is zero.
func SeededRNG(seed int64) *RNG {
	if seed == 0 {
		return NewEntropyRNG()
	}
	return NewRNG(seed)
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
