// Package util holds the seeded randomness shared by terrain generation,
// match setup and the command line.
package util

import (
	"math/rand"
	"time"
)

// New returns a generator for seed. Zero maps to one so the zero value of
// an options struct still yields a fixed sequence.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Seed returns seed unchanged, or a clock-derived seed when it is zero.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
