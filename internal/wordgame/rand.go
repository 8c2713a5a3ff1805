package wordgame

import "math/rand/v2"

// Rand is the source of randomness for word and first-turn selection.
type Rand interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// SystemRand draws from the process-wide math/rand/v2 source.
type SystemRand struct{}

func (SystemRand) IntN(n int) int { return rand.IntN(n) }
