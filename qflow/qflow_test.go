package qflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/skybench/dataset"
	"github.com/hupe1980/skybench/testutil"
)

func TestQFlowScenarios(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]float32
		expected []uint32
	}{
		{
			"MixedDominance",
			[][]float32{{1, 2}, {2, 1}, {3, 3}, {0.5, 5}, {5, 0.5}},
			[]uint32{0, 1, 3, 4},
		},
		{
			"AllDuplicates",
			[][]float32{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}},
			[]uint32{0, 1, 2, 3, 4},
		},
		{
			"Chain",
			[][]float32{{1, 2}, {2, 3}, {3, 4}},
			[]uint32{0},
		},
		{
			"AntiChain",
			[][]float32{{1, 4}, {2, 3}, {3, 2}, {4, 1}},
			[]uint32{0, 1, 2, 3},
		},
		{
			"EqualOnOneDim",
			[][]float32{{0, 0}, {0, 1}, {1, 0}},
			[]uint32{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.rows, 4).Execute()
			assert.Equal(t, tt.expected, testutil.Sorted(got))
		})
	}
}

func TestQFlowRandomAgainstBruteForce(t *testing.T) {
	for _, dims := range []int{2, 3, 5} {
		for seed := int64(0); seed < 4; seed++ {
			t.Run(fmt.Sprintf("d=%d/seed=%d", dims, seed), func(t *testing.T) {
				rows := dataset.Generate(450, dims, seed)
				want := testutil.Sorted(testutil.BruteForce(rows))
				assert.Equal(t, want, testutil.Sorted(New(rows, 4).Execute()))
			})
		}
	}
}

func TestQFlowThreadInvariance(t *testing.T) {
	rows := dataset.Generate(700, 3, 29)
	want := testutil.Sorted(New(rows, 1).Execute())
	for _, workers := range []int{2, 4, 8} {
		assert.Equal(t, want, testutil.Sorted(New(rows, workers).Execute()),
			"workers=%d", workers)
	}
}

// Tiny alpha drives the pipeline through many rounds without changing the
// result.
func TestQFlowSmallAlpha(t *testing.T) {
	rows := dataset.Generate(120, 3, 31)
	want := testutil.Sorted(testutil.BruteForce(rows))
	for _, alpha := range []int{1, 2, 7} {
		got := New(rows, 2, WithAlpha(alpha)).Execute()
		assert.Equal(t, want, testutil.Sorted(got), "alpha=%d", alpha)
	}
}

func TestQFlowEdgeSizes(t *testing.T) {
	assert.Empty(t, New(nil, 4).Execute())
	assert.Equal(t, []uint32{0}, New([][]float32{{0.6, 0.4}}, 4).Execute())
}
