package util

import (
	"math/rand/v2"
	"sync"
)

// Random yields uniform floats in [0, 1).
type Random interface {
	Float64() float64
}

// LockedRandom is a Random safe for concurrent use.
type LockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom returns a randomly seeded source.
func NewRandom() *LockedRandom {
	return &LockedRandom{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandom returns a deterministic source, for tests and replay.
func NewSeededRandom(seed uint64) *LockedRandom {
	return &LockedRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *LockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// FixedRandom returns the same value on every call.
type FixedRandom float64

func (f FixedRandom) Float64() float64 { return float64(f) }
