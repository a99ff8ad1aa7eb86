// Package rng provides the deterministic randomness source for the
// challenge solver: a 32-bit linear-congruential generator and a
// non-mutating Fisher-Yates shuffle. The generator constants reproduce
// the sequence the game client uses for the same seed, so a challenge
// solved here matches the one players see in the app.
package rng

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// LCG is a seeded linear-congruential generator. Create a fresh
// instance per solve call; reusing one across seeds breaks the
// determinism-per-seed contract.
type LCG struct {
	state int64
}

// New returns a generator seeded with the given value.
func New(seed int64) *LCG {
	state := seed % modulus
	if state < 0 {
		state += modulus
	}
	return &LCG{state: state}
}

// Next advances the generator and returns a value in [0, 1).
func (l *LCG) Next() float64 {
	l.state = (l.state*multiplier + increment) % modulus
	return float64(l.state) / modulus
}

// Shuffle returns a new slice with the items in Fisher-Yates order
// drawn from r. The input slice is not modified.
func Shuffle[T any](r *LCG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
