// Deterministic random stream for procedural generation and AI decisions.
// Every draw mutates the 32-bit state, so a fixed seed replays the exact
// same galaxy and the same AI choices given identical tick inputs.
package galaxy

import "math"

// Rand is a 32-bit xorshift generator. The zero value is unusable; use NewRand.
type Rand struct {
	State uint32
}

// NewRand creates a generator from a seed. Xorshift has a fixed point at
// zero, so a zero seed is remapped to a nonzero constant.
func NewRand(seed uint32) *Rand {
	if seed == 0 {
		seed = 0x9e3779b9
	}
	return &Rand{State: seed}
}

// Next advances the state and returns a float64 in [0, 1).
func (r *Rand) Next() float64 {
	s := r.State
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	r.State = s
	return float64(s%1000000) / 1000000.0
}

// Range returns a float64 in [a, b).
func (r *Rand) Range(a, b float64) float64 {
	return a + r.Next()*(b-a)
}

// IntRange returns an integer in [a, b], inclusive of both bounds.
func (r *Rand) IntRange(a, b int) int {
	return int(math.Floor(r.Range(float64(a), float64(b)+1)))
}
