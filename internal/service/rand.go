package service

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness for question generation and generator choice.
// *rand.Rand satisfies it; tests pass scripted implementations.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time-seeded source. It is not safe for concurrent use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func shuffled[T any](r Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
