package skybench

import (
	"errors"
	"fmt"

	"github.com/hupe1980/skybench/point"
)

var (
	// ErrEmptyDataset is returned when a run is attempted on zero rows.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// ErrUnknownAlgorithm indicates an algorithm name outside the registry.
type ErrUnknownAlgorithm struct {
	Name string
}

func (e *ErrUnknownAlgorithm) Error() string {
	return fmt.Sprintf("unknown algorithm: %q", e.Name)
}

// ErrDimensionOverflow indicates a dataset wider than the lattice codes can
// represent.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionOverflow struct {
	Dims  int
	cause error
}

func (e *ErrDimensionOverflow) Error() string {
	return fmt.Sprintf("dimension overflow: %d dimensions, lattice codes support at most %d", e.Dims, point.MaxDims)
}

func (e *ErrDimensionOverflow) Unwrap() error { return e.cause }

// ErrInvalidThreads indicates a non-positive thread count.
type ErrInvalidThreads struct {
	Threads int
}

func (e *ErrInvalidThreads) Error() string {
	return fmt.Sprintf("invalid thread count: %d", e.Threads)
}
