package engine

import "math/rand/v2"

// Rand is the source of the interference draws. *rand.Rand satisfies it;
// tests supply fixed sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
