package random_test

import (
	"math"
	"testing"

	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/aretw0/cyoa/pkg/random"
	"github.com/stretchr/testify/assert"
)

var (
	_ ports.RandomSource = (*random.Source)(nil)
	_ ports.RandomSource = (*random.Sequence)(nil)
)

func TestSource_Reproducible(t *testing.T) {
	a := random.NewSeeded(42)
	b := random.NewSeeded(42)
	for range 100 {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestSource_Bounds(t *testing.T) {
	s := random.NewSeeded(1)
	seen := map[int]bool{}
	for range 1000 {
		v := s.IntRange(5, 8)
		assert.GreaterOrEqual(t, v, 5)
		assert.Less(t, v, 8)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestSource_EmptyRangePanics(t *testing.T) {
	assert.Panics(t, func() { random.NewSeeded(1).IntRange(3, 3) })
}

func TestSource_IntBetween(t *testing.T) {
	s := random.NewSeeded(3)
	seen := map[int]bool{}
	for range 1000 {
		v := s.IntBetween(5, 7)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 7)
		seen[v] = true
	}
	assert.Len(t, seen, 3)

	assert.Equal(t, 4, s.IntBetween(4, 4))
	assert.NotPanics(t, func() {
		v := s.IntBetween(1, math.MaxInt)
		assert.GreaterOrEqual(t, v, 1)
		s.IntBetween(math.MinInt, math.MaxInt)
	})
	assert.Panics(t, func() { s.IntBetween(3, 2) })
}

func TestSequence(t *testing.T) {
	s := random.NewSequence(2, 50, -1)
	assert.Equal(t, 2, s.IntRange(0, 10))
	assert.Equal(t, 9, s.IntRange(0, 10), "clamped to hi-1")
	assert.Equal(t, 0, s.IntRange(0, 10), "clamped to lo")
	assert.Equal(t, 2, s.IntRange(0, 10), "wraps around")

	assert.Equal(t, 4, random.NewSequence().IntRange(4, 9))
}

func TestSequence_IntBetween(t *testing.T) {
	s := random.NewSequence(8, -3)
	assert.Equal(t, 6, s.IntBetween(1, 6), "clamped to hi")
	assert.Equal(t, 1, s.IntBetween(1, 6), "clamped to lo")
	assert.Equal(t, math.MaxInt, random.NewSequence(math.MaxInt).IntBetween(0, math.MaxInt))
}
