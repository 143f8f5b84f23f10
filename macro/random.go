package macro

import "math/rand/v2"

// Random is the random source policies sample from.
// *rand.Rand from math/rand/v2 satisfies it; tests inject scripted sources.
type Random interface {
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
	// Int64N returns a value in [0, n). n must be > 0.
	Int64N(n int64) int64
}

// NewRandom returns a seeded PCG source. The same seed yields the same run.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSystemRandom returns a source seeded from the runtime's entropy.
func NewSystemRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
