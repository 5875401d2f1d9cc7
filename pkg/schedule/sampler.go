package schedule

import (
	"math/rand"
	"slices"
	"sync"
)

// Sampler draws up to n candidate values from a pool. Implementations must
// sample without replacement and preserve determinism for a fixed seed.
type Sampler interface {
	Sample(pool []string, n int) []string
}

type seededSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns the default uniform sampler backed by a seeded source.
func NewSampler(seed int64) Sampler {
	return &seededSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSampler) Sample(pool []string, n int) []string {
	if n >= len(pool) {
		return slices.Clone(pool)
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx])
	}
	return out
}
