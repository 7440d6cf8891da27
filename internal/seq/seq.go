// internal/seq/seq.go
//
// Seeded, reproducible sequence used to shuffle the word list.
// Each call to Next consumes one seed value: x = seed/π, seed++,
// and returns the fractional part of x.
//
// The sequence is intentionally not random: the same starting seed and
// the same word list always yield the same board words.

package seq

import "math"

// DefaultSeed is the starting seed used when none is configured.
const DefaultSeed int64 = 12345

// Sequence is a monotonically advancing generator of values in [0,1).
// It is not safe for concurrent use; callers serialize access.
type Sequence struct {
	seed int64
}

// New returns a Sequence starting at seed.
func New(seed int64) *Sequence {
	return &Sequence{seed: seed}
}

// Next returns frac(seed/π) and advances the seed by one.
func (s *Sequence) Next() float64 {
	x := float64(s.seed) / math.Pi
	s.seed++
	f := x - math.Floor(x)
	// Guard against float rounding landing exactly on 1.
	if f >= 1 {
		return 0
	}
	return f
}

// Seed reports the seed the next call to Next will consume.
func (s *Sequence) Seed() int64 { return s.seed }
