// Package qflow implements the sort-by-score skyline pipeline: points are
// sorted ascending by Manhattan norm and processed in alpha-sized blocks,
// first against the confirmed skyline prefix, then among themselves. The
// score sort guarantees that a later point can never dominate an earlier
// confirmed one, so one left-to-right pass suffices.
package qflow

import (
	"slices"

	"github.com/hupe1980/skybench/dominance"
	"github.com/hupe1980/skybench/internal/parallel"
	"github.com/hupe1980/skybench/point"
)

// Name is the harness identifier of the algorithm.
const Name = "qflow"

// DefaultAlpha is the default block size of the pipeline.
const DefaultAlpha = 1024

// Option configures a QFlow engine.
type Option func(*QFlow)

// WithAlpha sets the block size of the pipelined sweep.
func WithAlpha(alpha int) Option {
	return func(q *QFlow) { q.alpha = alpha }
}

// QFlow is the score-sorted block pipeline.
type QFlow struct {
	workers int
	dims    int
	alpha   int

	data    []point.Scored
	skyline []uint32
}

// New copies rows into an owned buffer and prepares an engine run with the
// given worker count.
func New(rows [][]float32, workers int, opts ...Option) *QFlow {
	if workers < 1 {
		workers = 1
	}
	q := &QFlow{
		workers: workers,
		alpha:   DefaultAlpha,
		data:    point.ScoredFromRows(rows),
	}
	if len(rows) > 0 {
		q.dims = len(rows[0])
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Name returns the harness identifier of the algorithm.
func (q *QFlow) Name() string { return Name }

// Execute computes the skyline and returns the ids of the surviving points.
func (q *QFlow) Execute() []uint32 {
	n := len(q.data)
	if n == 0 {
		return nil
	}
	if n < q.alpha {
		q.alpha = n / 2
		if q.alpha < 1 {
			q.alpha = 1
		}
	}

	parallel.For(q.workers, 0, n, func(i int) {
		q.data[i].Score = point.Manhattan(q.data[i].Elems)
	})
	slices.SortFunc(q.data, func(a, b point.Scored) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})

	survivors := q.compute()
	for i := 0; i < survivors; i++ {
		q.skyline = append(q.skyline, q.data[i].ID)
	}
	return q.skyline
}

// compute overwrites the data buffer so that the skyline occupies the front
// and returns its size.
func (q *QFlow) compute() int {
	n := len(q.data)
	sky := make([]bool, n)

	// data[0..head1] = confirmed skyline, data[head1+1..head2] = block
	// candidates. The lowest-scored point is a skyline point outright.
	head1 := 0
	head2 := 0
	start := 1
	sky[0] = true

	for start < n {
		stop := start + q.alpha
		if stop > n {
			stop = n
		}

		// Phase I: drop block points dominated by a confirmed point.
		parallel.For(q.workers, start, stop, func(i int) {
			for j := 0; j <= head1; j++ {
				if dominance.DominateLeft(q.data[j].Elems, q.data[i].Elems) {
					sky[i] = false
					return
				}
			}
			sky[i] = true
		})

		// Compress the candidates behind the confirmed prefix.
		head2 = head1
		for i := start; i < stop; i++ {
			if sky[i] {
				head2++
				q.data[head2] = q.data[i]
			}
		}

		// Phase II: confirm candidates against earlier candidates. Only
		// earlier ones can dominate thanks to the score sort.
		parallel.For(q.workers, head1+1, head2+1, func(i int) {
			for j := head1 + 1; j < i; j++ {
				if dominance.DominateLeft(q.data[j].Elems, q.data[i].Elems) {
					sky[i] = false
					return
				}
			}
			sky[i] = true
		})

		// Compress the confirmed points.
		for i := head1 + 1; i <= head2; i++ {
			if sky[i] {
				head1++
				q.data[head1] = q.data[i]
			}
		}
		start = stop
	}
	return head1 + 1
}
