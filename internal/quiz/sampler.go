// Package quiz draws quiz sessions from a question pool and scores them.
package quiz

import (
	"math/rand"
	"sync"
	"time"

	"sluchapp/internal/models"
)

// Sampler draws questions uniformly at random with replacement
type Sampler struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSampler creates a sampler using rng, or a time-seeded source when rng is nil
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rand: rng}
}

// Draw returns n questions picked independently from pool.
// An empty pool or non-positive n yields an empty slice.
func (s *Sampler) Draw(pool []models.Question, n int) []models.Question {
	if len(pool) == 0 || n <= 0 {
		return []models.Question{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drawn := make([]models.Question, n)
	for i := range drawn {
		drawn[i] = pool[s.rand.Intn(len(pool))]
	}
	return drawn
}
