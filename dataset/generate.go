package dataset

import "math/rand"

// RNG encapsulates a seeded random number generator so that generated
// workloads are reproducible.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Generate produces n uniformly random points in [0,1)^dims.
func (r *RNG) Generate(n, dims int) [][]float32 {
	rows := make([][]float32, n)
	for i := range rows {
		rows[i] = make([]float32, dims)
		for j := range rows[i] {
			rows[i][j] = r.rand.Float32()
		}
	}
	return rows
}

// Generate is a convenience wrapper creating a fresh RNG per call.
func Generate(n, dims int, seed int64) [][]float32 {
	return NewRNG(seed).Generate(n, dims)
}
