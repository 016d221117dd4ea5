// Package testutil provides the brute-force skyline reference and workload
// helpers shared by the algorithm test suites.
package testutil

import "slices"

// BruteForce computes the skyline ids of rows by exhaustive pairwise
// comparison, treating coordinate-equal rows as mutually non-dominating.
// It is the reference every algorithm is checked against.
func BruteForce(rows [][]float32) []uint32 {
	var out []uint32
	for i, p := range rows {
		dominated := false
		for j, q := range rows {
			if i == j {
				continue
			}
			if dominates(q, p) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, uint32(i))
		}
	}
	return out
}

// dominates reports whether q strictly dominates p under minimization.
func dominates(q, p []float32) bool {
	better := false
	for k := range q {
		if q[k] > p[k] {
			return false
		}
		if q[k] < p[k] {
			better = true
		}
	}
	return better
}

// Sorted returns a sorted copy of ids so unordered outputs can be compared
// with a plain equality assertion.
func Sorted(ids []uint32) []uint32 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
