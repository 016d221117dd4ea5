// Package skytree implements the lattice-partitioning skyline engines: the
// sequential recursive SkyTree and the block-parallel ParallelBSkyTree.
//
// Both engines pick a skyline-resident pivot, assign every remaining point a
// d-bit lattice code against it (bit i set iff the point is on the >= side
// of the pivot on dimension i), and exploit partial dominance: a point in
// subregion c can only be dominated from subregions whose code is a
// sub-mask of c.
package skytree

import (
	"slices"

	"github.com/hupe1980/skybench/dominance"
	"github.com/hupe1980/skybench/point"
)

// Name is the harness identifier of the sequential engine.
const Name = "bskytree"

// Option configures a SkyTree.
type Option func(*SkyTree)

// WithoutTreeFilter makes the partial-dominance filter test subtree roots
// exhaustively instead of walking the lattice-ordered child lists.
func WithoutTreeFilter() Option {
	return func(s *SkyTree) { s.useTree = false }
}

// WithDivideAndConquer switches to the variant that fully recurses every
// subregion first and runs pairwise partial dominance between the built
// sibling subtrees afterwards.
func WithDivideAndConquer() Option {
	return func(s *SkyTree) { s.useDnC = true }
}

// SkyTree is the sequential recursive skyline engine.
type SkyTree struct {
	dims    int
	useTree bool
	useDnC  bool

	data      []point.Point
	eqm       []uint32 // ids coordinate-equal to some pivot
	dominated []bool   // by id; only with DnC
	skyline   []uint32
}

// New copies rows into an owned buffer and prepares an engine run.
func New(rows [][]float32, opts ...Option) *SkyTree {
	s := &SkyTree{
		useTree: true,
		data:    point.FromRows(rows),
	}
	if len(rows) > 0 {
		s.dims = len(rows[0])
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the harness identifier of the engine.
func (s *SkyTree) Name() string { return Name }

// Execute computes the skyline and returns the ids of the surviving points.
func (s *SkyTree) Execute() []uint32 {
	if len(s.data) == 0 {
		return nil
	}
	if s.useDnC {
		s.dominated = make([]bool, len(s.data))
	}

	mins := make([]float32, s.dims)
	maxs := make([]float32, s.dims)
	for d := range maxs {
		maxs[d] = 1.0
	}

	root := &Node{}
	s.compute(mins, maxs, s.data, root)
	s.traverse(root)

	return append(s.skyline, s.eqm...)
}

// compute builds the subtree for data within the box [mins, maxs].
func (s *SkyTree) compute(mins, maxs []float32, data []point.Point, node *Node) {
	data = selectPivot(data, mins, maxs)
	node.Point = data[0]

	buckets := s.mapToRegions(data)
	codes := make([]uint32, 0, len(buckets))
	for code := range buckets {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	for _, code := range codes {
		bucket := buckets[code]

		if !s.useDnC && len(node.Children) > 0 {
			bucket = s.partialDominance(code, bucket, node)
		}
		if len(bucket) == 0 {
			continue
		}

		childMins := make([]float32, s.dims)
		childMaxs := make([]float32, s.dims)
		for d := 0; d < s.dims; d++ {
			if code&(1<<d) != 0 {
				childMins[d] = node.Point.Elems[d]
				childMaxs[d] = maxs[d]
			} else {
				childMins[d] = mins[d]
				childMaxs[d] = node.Point.Elems[d]
			}
		}

		child := &Node{Lattice: code}
		s.compute(childMins, childMaxs, bucket, child)

		if s.useDnC && len(node.Children) > 0 {
			s.partialDominanceTrees(code, node, child)
		}
		node.Children = append(node.Children, child)
	}
}

// mapToRegions buckets every non-pivot point by its lattice code against the
// pivot at data[0]. Points equal to the pivot go to the equivalence list;
// points with an all-ones code are dominated by the pivot and dropped.
func (s *SkyTree) mapToRegions(data []point.Point) map[uint32][]point.Point {
	allOnes := point.AllOnes(s.dims)
	pivot := data[0]
	buckets := make(map[uint32][]point.Point)
	for _, p := range data[1:] {
		if dominance.Equal(pivot.Elems, p.Elems) {
			s.eqm = append(s.eqm, p.ID)
			continue
		}
		lattice := dominance.BitmapDVC(p.Elems, pivot.Elems)
		if lattice < allOnes {
			buckets[lattice] = append(buckets[lattice], p)
		}
	}
	return buckets
}

// partialDominance drops every bucket point dominated by an older sibling
// subtree whose lattice code is a sub-mask of code. Children are in
// ascending code order, so the walk stops at the first larger code.
func (s *SkyTree) partialDominance(code uint32, pts []point.Point, node *Node) []point.Point {
	for _, child := range node.Children {
		if child.Lattice > code {
			break
		}
		if child.Lattice&code != child.Lattice {
			continue
		}
		kept := pts[:0]
		for _, p := range pts {
			if !s.filter(p, child) {
				kept = append(kept, p)
			}
		}
		pts = kept
		if len(pts) == 0 {
			break
		}
	}
	return pts
}

// partialDominanceTrees walks the built right subtree and flags every
// descendant dominated by an applicable left sibling of the parent node.
// Flagged leaves are unlinked; flagged inner nodes stay to preserve their
// children and are suppressed at traversal. Reports whether the subtree
// root itself is dominated.
func (s *SkyTree) partialDominanceTrees(code uint32, parent, right *Node) bool {
	kept := right.Children[:0]
	for _, c := range right.Children {
		if s.partialDominanceTrees(code, parent, c) && len(c.Children) == 0 {
			continue
		}
		kept = append(kept, c)
	}
	right.Children = kept

	for _, left := range parent.Children {
		if left.Lattice > code {
			break
		}
		if left.Lattice&code != left.Lattice {
			continue
		}
		if s.filter(right.Point, left) {
			s.dominated[right.Point.ID] = true
			return true
		}
	}
	return false
}

func (s *SkyTree) filter(p point.Point, subtree *Node) bool {
	if s.useTree {
		return s.filterPoint(p, subtree)
	}
	return s.filterPointNoTree(p, subtree)
}

// filterPoint reports whether p is dominated by the subtree's pivot or by
// any applicable descendant. Only children whose code is a sub-mask of p's
// code against the subtree pivot can dominate p.
func (s *SkyTree) filterPoint(p point.Point, subtree *Node) bool {
	lattice := dominance.BitmapDVC(p.Elems, subtree.Point.Elems)
	if lattice == point.AllOnes(s.dims) {
		return true
	}
	for _, child := range subtree.Children {
		if child.Lattice > lattice {
			break
		}
		if child.Lattice&lattice == child.Lattice {
			if s.filterPoint(p, child) {
				return true
			}
		}
	}
	return false
}

// filterPointNoTree is the exhaustive variant: it tests every child subtree
// regardless of lattice relation.
func (s *SkyTree) filterPointNoTree(p point.Point, subtree *Node) bool {
	lattice := dominance.BitmapDVC(p.Elems, subtree.Point.Elems)
	if lattice == point.AllOnes(s.dims) {
		return true
	}
	for _, child := range subtree.Children {
		if s.filterPoint(p, child) {
			return true
		}
	}
	return false
}

// traverse emits the skyline in pre-order, suppressing DnC-flagged points.
func (s *SkyTree) traverse(node *Node) {
	if !s.useDnC || !s.dominated[node.Point.ID] {
		s.skyline = append(s.skyline, node.Point.ID)
	}
	for _, c := range node.Children {
		s.traverse(c)
	}
}
