package skytree

import "github.com/hupe1980/skybench/point"

// Node is one vertex of the lattice tree: a skyline-resident pivot, its
// lattice code relative to the parent's pivot, and the subtrees of the
// non-empty subregions. Children are appended in ascending lattice-code
// order; the partial-dominance filter depends on that ordering for its
// early break.
type Node struct {
	Lattice  uint32
	Point    point.Point
	Children []*Node
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	count := 1
	for _, c := range n.Children {
		count += c.Size()
	}
	return count
}
