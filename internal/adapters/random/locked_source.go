package random

import (
	"math/rand"
	"sync"

	"github.com/queueaway/queueaway/internal/domain/providers"
)

// LockedSource implements the RandomSource interface around math/rand,
// guarded by a mutex so request handlers and per-queue tick goroutines
// can share one source.
type LockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedSource creates a new locked random source from a seed
func NewLockedSource(seed int64) *LockedSource {
	return &LockedSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a uniform int in [0, n)
func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Float64 returns a uniform float64 in [0, 1)
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

var _ providers.RandomSource = (*LockedSource)(nil)
