package util

import (
	"math/rand/v2"
	"sync"
)

// RandomSource draws uniform integers from math/rand/v2.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a source backed by the runtime's global generator.
func NewRandomSource() *RandomSource {
	return &RandomSource{}
}

// NewSeededRandomSource returns a reproducible source.
func NewSeededRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (s *RandomSource) IntN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
