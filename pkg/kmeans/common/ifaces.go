/*
Interfaces common for this project. Kept apart from pkg/kmeans so that
callers (the API, tests, dataset generation) can provide implementations
without importing the engine itself.
*/
package common

import (
	"math/rand"
	"time"
)

// Iface hint: the stdlib generator is the default implementation.
var _ RandSource = new(rand.Rand)

// RandSource is the randomness the engine consumes. It is passed in explicitly
// so that runs are reproducible under a seeded generator. Implementations do
// not need to be safe for concurrent use; each run should own one.
type RandSource interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// Intn returns a number in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// NewRand creates a RandSource from 'seed'. A zero seed means "seed from the
// clock", which is what a request without an explicit seed gets.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
