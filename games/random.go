package games

import (
	"math/rand"
	"sync"
	"time"
)

// Clock provides the current time. Injected so loan aging, quiz timing and
// cooldowns are replayable in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// RandomSource provides all randomness consumed by the game machines.
// Substitutable with a deterministic source for testing.
type RandomSource interface {
	// Intn returns a uniform int in [0, n)
	Intn(n int) int

	// Shuffle randomizes the order of n elements via the swap function
	Shuffle(n int, swap func(i, j int))

	// WeightedChoice returns an index into weights, with probability
	// proportional to each weight
	WeightedChoice(weights []int) int
}

// mathRandomSource is the production RandomSource over math/rand.
// The mutex makes it safe for use from concurrent handlers.
type mathRandomSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource creates a RandomSource seeded from the current time
func NewRandomSource() RandomSource {
	return &mathRandomSource{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *mathRandomSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *mathRandomSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

func (s *mathRandomSource) WeightedChoice(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	roll := s.Intn(total)
	for i, w := range weights {
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}
