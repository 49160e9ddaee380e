// Package prng provides the seeded generator used for reproducible sessions.
//
// Two clients that construct a Rand from the same seed observe the same
// sequence of values, which is what lets a shared room code produce
// identical question sets without any coordination.
package prng

import (
	"math/rand/v2"
	"strconv"
	"unicode/utf16"
)

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Source is the randomness used by the scheduler and session builders.
// Both *Rand and *math/rand/v2.Rand satisfy it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Rand is a linear congruential generator seeded from a string.
// It is not safe for concurrent use.
type Rand struct {
	state int64
}

// New derives the initial state by folding the UTF-16 code units of seed
// into a 32-bit hash. The empty seed yields state 0.
func New(seed string) *Rand {
	return &Rand{state: hashSeed(seed)}
}

// NewFromInt seeds from the decimal form of n, so NewFromInt(42) and
// New("42") produce the same sequence.
func NewFromInt(n int64) *Rand {
	return New(strconv.FormatInt(n, 10))
}

func hashSeed(seed string) int64 {
	var h int32
	for _, cu := range utf16.Encode([]rune(seed)) {
		// Signed overflow wraps, matching a 32-bit fold.
		h = (h << 5) - h + int32(cu)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// Next advances the generator and returns a value in [0, 1).
func (r *Rand) Next() float64 {
	r.state = (r.state*multiplier + increment) % modulus
	return float64(r.state) / modulus
}

// Float64 is Next under the Source method set.
func (r *Rand) Float64() float64 {
	return r.Next()
}

// NextInt returns an integer in the inclusive range [min, max].
func (r *Rand) NextInt(min, max int) int {
	return int(r.Next()*float64(max-min+1)) + min
}

// IntN returns an integer in [0, n). It panics if n <= 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		panic("prng: invalid argument to IntN")
	}
	return r.NextInt(0, n-1)
}

// Choice returns a random element of items. The zero value is returned
// for an empty slice.
func Choice[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.IntN(len(items))]
}

// Shuffle returns a Fisher–Yates permutation of items. The input slice is
// left untouched.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

type unseeded struct{}

func (unseeded) Float64() float64 { return rand.Float64() }
func (unseeded) IntN(n int) int   { return rand.IntN(n) }

// Unseeded returns a Source backed by the runtime's global generator.
// It is safe for concurrent use.
func Unseeded() Source {
	return unseeded{}
}
