// Package pskyline implements the map/reduce skyline algorithm: every
// worker computes the skyline of its own block with a simple nested-loop
// sweep, and the per-block skylines are folded together with a parallel
// merge.
package pskyline

import (
	"sync/atomic"

	"github.com/hupe1980/skybench/dominance"
	"github.com/hupe1980/skybench/internal/parallel"
	"github.com/hupe1980/skybench/point"
)

// Name is the harness identifier of the algorithm.
const Name = "pskyline"

// Survival flags for the merge phase. LIVE must be the zero value so a
// flag region can be reset with a plain clear.
const (
	live int32 = 0
	dead int32 = 1
)

// block describes a contiguous range of the point buffer and, once its
// local skyline is computed, the size of the surviving prefix.
type block struct {
	start, end int // [start, end)
	size       int
}

// PSkyline is the map/reduce skyline algorithm.
type PSkyline struct {
	workers int
	dims    int

	data   []point.Point
	blocks []block
	flag   []atomic.Int32

	skyline []uint32
}

// New copies rows into an owned buffer and splits it into one block per
// worker; the last block absorbs the remainder.
func New(rows [][]float32, workers int) *PSkyline {
	if workers < 1 {
		workers = 1
	}
	if workers > len(rows) && len(rows) > 0 {
		workers = len(rows)
	}
	p := &PSkyline{
		workers: workers,
		data:    point.FromRows(rows),
	}
	if len(rows) > 0 {
		p.dims = len(rows[0])
	}

	n := len(p.data)
	if n > 0 {
		p.flag = make([]atomic.Int32, n)
		blockSize := n / workers
		p.blocks = make([]block, workers)
		start := 0
		for b := range p.blocks {
			p.blocks[b] = block{start: start, end: start + blockSize}
			start += blockSize
		}
		p.blocks[workers-1].end = n
	}
	return p
}

// Name returns the harness identifier of the algorithm.
func (p *PSkyline) Name() string { return Name }

// Execute computes the skyline and returns the ids of the surviving points.
func (p *PSkyline) Execute() []uint32 {
	if len(p.data) == 0 {
		return nil
	}

	// PMap: every worker reduces its own block to a local skyline.
	parallel.For(p.workers, 0, len(p.blocks), func(b int) {
		p.blocks[b] = p.sskyline(p.blocks[b])
	})

	// SReduce: fold the local skylines left to right.
	result := p.blocks[0]
	for b := 1; b < len(p.blocks); b++ {
		result = p.pmerge(result, p.blocks[b])
	}

	for i := 0; i < result.size; i++ {
		p.skyline = append(p.skyline, p.data[i].ID)
	}
	return p.skyline
}

// sskyline computes the block's skyline in place with head and tail
// cursors: the head is compared against every later point, dominated
// points are popped from the tail, and a dominating point replaces the
// head and restarts the inner sweep.
func (p *PSkyline) sskyline(in block) block {
	D := p.data[in.start:in.end]
	head, tail := 0, len(D)-1

	for head < tail {
		i := head + 1
		for i <= tail {
			switch dominance.Compare(D[head].Elems, D[i].Elems) {
			case dominance.Left:
				D[i] = D[tail]
				tail--
			case dominance.Right:
				D[head] = D[i]
				D[i] = D[tail]
				tail--
				i = head + 1
			default:
				i++
			}
		}
		head++
	}

	in.size = tail + 1
	return in
}

// pmerge merges two adjacent local skylines: the right block is moved up to
// be contiguous with the left, then every left point checks in parallel
// whether it survives against the right block, killing dominated right
// points along the way. Both sides are compacted by flag afterwards.
func (p *PSkyline) pmerge(left, right block) block {
	joint := left.size + right.size
	copy(p.data[left.start+left.size:], p.data[right.start:right.start+right.size])

	leftSky := p.data[left.start : left.start+left.size]
	rightSky := p.data[left.start+left.size : left.start+joint]

	flag := p.flag[left.start : left.start+joint]
	for i := range flag {
		flag[i].Store(live)
	}
	leftFlag := flag[:left.size]
	rightFlag := flag[left.size:]

	parallel.For(p.workers, 0, left.size, func(i int) {
		leftFlag[i].Store(p.checkSurvival(leftSky[i], rightSky, rightFlag))
	})

	cnt := 0
	for i := 0; i < joint; i++ {
		if flag[i].Load() == live {
			p.data[left.start+cnt] = p.data[left.start+i]
			cnt++
		}
	}

	left.size = cnt
	return left
}

// checkSurvival returns the flag for one left point: dead right points are
// skipped, right points dominated by it are flagged dead, and the first
// right point dominating it decides its fate. The dead flags are the only
// cross-worker write surface; a missed flag merely costs one extra
// dominance test.
func (p *PSkyline) checkSurvival(l point.Point, right []point.Point, rightFlag []atomic.Int32) int32 {
	for j := range right {
		if rightFlag[j].Load() == dead {
			continue
		}
		switch dominance.Compare(l.Elems, right[j].Elems) {
		case dominance.Left:
			rightFlag[j].Store(dead)
		case dominance.Right:
			return dead
		}
	}
	return live
}
