package skybench

import (
	"github.com/hupe1980/skybench/hybrid"
	"github.com/hupe1980/skybench/pskyline"
	"github.com/hupe1980/skybench/qflow"
	"github.com/hupe1980/skybench/skytree"
)

// Algorithm is one skyline solver ready to run on its copied input. Execute
// consumes the owned buffer; construct a fresh value per run.
type Algorithm interface {
	// Name returns the registry name of the algorithm.
	Name() string
	// Execute computes the skyline and returns the ids of the surviving
	// input rows. The result is a set; ordering is unspecified.
	Execute() []uint32
}

// Registry names of the built-in algorithms.
const (
	AlgBSkyTree         = skytree.Name
	AlgParallelBSkyTree = skytree.ParallelName
	AlgPSkyline         = pskyline.Name
	AlgQFlow            = qflow.Name
	AlgHybrid           = hybrid.Name
)

// Algorithms returns the registry names in their canonical order.
func Algorithms() []string {
	return []string{AlgBSkyTree, AlgParallelBSkyTree, AlgPSkyline, AlgQFlow, AlgHybrid}
}

// IsParallel reports whether the named algorithm honors a thread count.
func IsParallel(name string) bool {
	return name != AlgBSkyTree
}

// newAlgorithm constructs the named algorithm over its own copy of rows.
func newAlgorithm(name string, rows [][]float32, workers, alpha, pqSize int) (Algorithm, error) {
	switch name {
	case AlgBSkyTree:
		return skytree.New(rows), nil
	case AlgParallelBSkyTree:
		return skytree.NewParallel(rows, workers), nil
	case AlgPSkyline:
		return pskyline.New(rows, workers), nil
	case AlgQFlow:
		return qflow.New(rows, workers, qflow.WithAlpha(alpha)), nil
	case AlgHybrid:
		return hybrid.New(rows, workers, hybrid.WithAlpha(alpha), hybrid.WithPQSize(pqSize)), nil
	default:
		return nil, &ErrUnknownAlgorithm{Name: name}
	}
}
