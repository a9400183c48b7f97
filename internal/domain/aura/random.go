package aura

import (
	"math/rand"
)

// Random is the only source of non-determinism in the engine: particle and
// droplet jitter and the randomizer's pick. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// NewRandom returns a seeded source. The same seed replays the same aura.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // visual jitter, not security
}
