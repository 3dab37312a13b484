package ports

// RandomSource supplies uniform integers.
type RandomSource interface {
	// IntRange returns a uniform integer in [lo, hi). hi must be greater than lo.
	IntRange(lo, hi int) int

	// IntBetween returns a uniform integer in [lo, hi]. hi must not be less than lo.
	// It accepts the full int domain, math.MaxInt included.
	IntBetween(lo, hi int) int
}
