package scheduler

import (
	"math/rand/v2"
	"time"
)

// Rand is the randomness the drafter draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time-seeded source.
func NewRand() Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>17|1))
}

// NewSeededRand returns a reproducible source for tests and --seed.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
