// Package point defines the point types shared by all skyline algorithms.
//
// A point is a fixed-width vector of float32 coordinates plus its original
// input index (ID). The width d is fixed per run and must not exceed MaxDims
// so that one bit per dimension fits in a uint32 lattice code.
//
// Scored adds the Manhattan-norm score used by the sort-based algorithms.
// Coded adds a raw lattice-code field. Encoded packs the lattice code and
// its popcount level into a single word ordered so that a plain integer
// compare yields (level, mask) order; see Encoded.
package point

import "math/bits"

// MaxDims is the maximum supported dimensionality. One bit per dimension
// must fit in a uint32 lattice code alongside the packed level.
const MaxDims = 31

// Point is a single input row: d coordinates and the 0-based input index.
type Point struct {
	ID    uint32
	Elems []float32
}

// Values returns the coordinate vector. It exists so that generic code can
// operate uniformly on Point and the types embedding it.
func (p Point) Values() []float32 { return p.Elems }

// Scored is a point with its Manhattan norm attached.
type Scored struct {
	Point
	Score float32
}

// Coded is a point with a raw d-bit lattice code attached.
type Coded struct {
	Point
	Partition uint32
}

// Encoded is a scored point whose Partition word packs the lattice code in
// the low d bits and the code's popcount (the level) in the bits above:
//
//	Partition = level<<d | mask
//
// A pruned point is marked with the sentinel (d+1)<<d (level d+1, empty
// mask), one above the largest live encoding d<<d | all-ones, so it sorts
// after every live encoding and is detected in one compare.
type Encoded struct {
	Scored
	Partition uint32
}

// AllOnes returns the d-bit mask with every dimension bit set.
func AllOnes(dims int) uint32 {
	return 1<<dims - 1
}

// Manhattan returns the sum of the coordinates.
func Manhattan(elems []float32) float32 {
	var sum float32
	for _, v := range elems {
		sum += v
	}
	return sum
}

// SetPartition stores mask together with its level.
func (e *Encoded) SetPartition(mask uint32, dims int) {
	e.Partition = uint32(bits.OnesCount32(mask))<<dims | mask
}

// Level returns the packed partition level (popcount of the mask).
func (e *Encoded) Level(dims int) uint32 {
	return e.Partition >> dims
}

// Mask returns the packed d-bit lattice code.
func (e *Encoded) Mask(dims int) uint32 {
	return e.Partition & AllOnes(dims)
}

// MarkPruned overwrites the partition word with the pruned sentinel.
func (e *Encoded) MarkPruned(dims int) {
	e.Partition = uint32(dims+1) << dims
}

// Pruned reports whether the point carries the pruned sentinel.
func (e *Encoded) Pruned(dims int) bool {
	return e.Partition == uint32(dims+1)<<dims
}

// CanSkip reports whether a partition with the given mask cannot contain a
// point dominating e: the partition has a bit set that e does not.
func (e *Encoded) CanSkip(other uint32, dims int) bool {
	return (e.Mask(dims)^other)&other != 0
}

// FromRows copies rows into an owned point buffer, assigning dense IDs in
// input order. The coordinates share one flat backing array.
func FromRows(rows [][]float32) []Point {
	if len(rows) == 0 {
		return nil
	}
	dims := len(rows[0])
	backing := make([]float32, len(rows)*dims)
	pts := make([]Point, len(rows))
	for i, row := range rows {
		elems := backing[i*dims : (i+1)*dims : (i+1)*dims]
		copy(elems, row)
		pts[i] = Point{ID: uint32(i), Elems: elems}
	}
	return pts
}

// ScoredFromRows is FromRows for scored points. Scores are left zero; the
// owning algorithm computes them.
func ScoredFromRows(rows [][]float32) []Scored {
	pts := FromRows(rows)
	out := make([]Scored, len(pts))
	for i, p := range pts {
		out[i] = Scored{Point: p}
	}
	return out
}

// CodedFromRows is FromRows for raw-coded points.
func CodedFromRows(rows [][]float32) []Coded {
	pts := FromRows(rows)
	out := make([]Coded, len(pts))
	for i, p := range pts {
		out[i] = Coded{Point: p}
	}
	return out
}

// EncodedFromRows is FromRows for encoded partition points.
func EncodedFromRows(rows [][]float32) []Encoded {
	pts := FromRows(rows)
	out := make([]Encoded, len(pts))
	for i, p := range pts {
		out[i] = Encoded{Scored: Scored{Point: p}}
	}
	return out
}
