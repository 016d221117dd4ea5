package hybrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/skybench/dataset"
	"github.com/hupe1980/skybench/testutil"
)

func TestHybridScenarios(t *testing.T) {
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

func TestHybridRandomAgainstBruteForce(t *testing.T) {
	for _, dims := range []int{2, 3, 4, 6} {
		for seed := int64(0); seed < 4; seed++ {
			t.Run(fmt.Sprintf("d=%d/seed=%d", dims, seed), func(t *testing.T) {
				rows := dataset.Generate(500, dims, seed)
				want := testutil.Sorted(testutil.BruteForce(rows))
				assert.Equal(t, want, testutil.Sorted(New(rows, 4).Execute()))
			})
		}
	}
}

func TestHybridThreadInvariance(t *testing.T) {
	rows := dataset.Generate(800, 4, 21)
	want := testutil.Sorted(New(rows, 1).Execute())
	for _, workers := range []int{2, 4, 8} {
		assert.Equal(t, want, testutil.Sorted(New(rows, workers).Execute()),
			"workers=%d", workers)
	}
}

// Small alpha forces a partition-map update after nearly every point, which
// drives the pipeline through many rounds and exercises the secondary
// per-run masks installed by updatePartitionMap. A run head and its members
// disagree in field semantics (primary orthant code vs fine mask), so a
// workload with many same-orthant points of graded scores covers the case
// where only the secondary mask admits the decisive comparison.
func TestHybridSmallAlphaSecondaryMasks(t *testing.T) {
	rows := [][]float32{
		{0.10, 0.90, 0.50}, {0.12, 0.88, 0.52}, {0.14, 0.86, 0.48},
		{0.16, 0.84, 0.46}, {0.18, 0.82, 0.44}, {0.20, 0.80, 0.42},
		{0.11, 0.91, 0.51}, {0.13, 0.89, 0.53}, // dominated by 0 and 1 respectively
		{0.90, 0.10, 0.50}, {0.88, 0.12, 0.52},
		{0.50, 0.50, 0.50}, {0.52, 0.52, 0.52}, // 11 dominated by 10
	}
	want := testutil.Sorted(testutil.BruteForce(rows))

	for _, alpha := range []int{1, 2, 3, 5} {
		got := New(rows, 2, WithAlpha(alpha)).Execute()
		assert.Equal(t, want, testutil.Sorted(got), "alpha=%d", alpha)
	}
}

func TestHybridAlphaAndQueueClamp(t *testing.T) {
	rows := dataset.Generate(10, 2, 5)
	want := testutil.Sorted(testutil.BruteForce(rows))

	// Both alpha and the queue capacity exceed n and must clamp silently.
	got := New(rows, 4, WithAlpha(4096), WithPQSize(512)).Execute()
	assert.Equal(t, want, testutil.Sorted(got))
}

func TestHybridEdgeSizes(t *testing.T) {
	assert.Empty(t, New(nil, 4).Execute())
	assert.Equal(t, []uint32{0}, New([][]float32{{0.4, 0.6}}, 4).Execute())
}
