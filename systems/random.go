package systems

import "math/rand"

// Random is the source of randomness the simulation draws from.
type Random interface {
	// Range returns a uniform value in [lo, hi). Returns lo when hi <= lo.
	Range(lo, hi float64) float64
	// Chance returns true with probability p.
	Chance(p float64) bool
}

// SeededRandom is a Random backed by a seeded math/rand source.
type SeededRandom struct {
	rng *rand.Rand
}

// NewRandom creates a Random with a deterministic seed.
func NewRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// Range returns a uniform value in [lo, hi).
func (r *SeededRandom) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (r *SeededRandom) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// FixedRandom is a deterministic Random for tests and tools.
// Range returns lo + Fraction*(hi-lo); Chance returns Hit.
type FixedRandom struct {
	Fraction float64
	Hit      bool
}

// Range returns the point at Fraction between lo and hi.
func (r FixedRandom) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Fraction*(hi-lo)
}

// Chance returns Hit regardless of p, except that p <= 0 never hits and p >= 1 always does.
func (r FixedRandom) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Hit
}
