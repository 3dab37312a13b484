// Package random provides the RandomSource implementations used by the evaluator.
package random

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a seeded, reproducible RandomSource. Safe for concurrent use.
type Source struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewSeeded creates a source whose draws are fully determined by seed.
func NewSeeded(seed uint64) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// New creates a source seeded from the clock. Seed reports the value used.
func New() *Source {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// IntRange returns a uniform integer in [lo, hi).
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		panic(fmt.Sprintf("random: empty range [%d, %d)", lo, hi))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo)
}

// IntBetween returns a uniform integer in [lo, hi].
func (s *Source) IntBetween(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("random: empty range [%d, %d]", lo, hi))
	}
	// The span is computed unsigned so extreme bounds cannot overflow.
	span := uint64(hi) - uint64(lo)
	s.mu.Lock()
	defer s.mu.Unlock()
	if span == math.MaxUint64 {
		return int(s.rng.Uint64())
	}
	return lo + int(s.rng.Uint64N(span+1))
}

// Sequence replays fixed draws, for tests and reproductions.
// Each draw is clamped into the requested range. When exhausted it starts over.
type Sequence struct {
	mu    sync.Mutex
	draws []int
	next  int
}

// NewSequence creates a source that yields draws in order.
func NewSequence(draws ...int) *Sequence {
	return &Sequence{draws: draws}
}

// IntRange returns the next draw clamped into [lo, hi).
func (s *Sequence) IntRange(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draws) == 0 {
		return lo
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return min(max(v, lo), hi-1)
}

// IntBetween returns the next draw clamped into [lo, hi].
func (s *Sequence) IntBetween(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draws) == 0 {
		return lo
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return min(max(v, lo), hi)
}
