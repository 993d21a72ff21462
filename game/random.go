package game

import "math/rand"

// Rand is the random source used for spawn jitter and particle sizing.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniform returns a value in [lo,hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// uniformUint returns a value in [lo,hi).
func uniformUint(r Rand, lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	return lo + uint32(r.Intn(int(hi-lo)))
}
