// Package skybench is a benchmark harness for multidimensional skyline
// computation. Given N points in a d-dimensional space it computes the
// skyline, the subset of points not dominated by any other, with several
// algorithms across thread counts on the same workload and cross-checks
// their outputs as sets.
//
// # Quick Start
//
//	rows, _ := dataset.Read("workloads/house.csv")
//	runner := skybench.NewRunner(skybench.Config{
//	    Algorithms: []string{"bskytree", "hybrid"},
//	    Threads:    []int{1, 4},
//	})
//	report, _ := runner.Run(rows)
//	for _, res := range report.Results {
//	    fmt.Println(res.Algorithm, res.Threads, res.Elapsed)
//	}
//
// # Algorithms
//
//   - bskytree: sequential recursive lattice tree (SkyTree)
//   - pbskytree: parallelized SkyTree inner loop
//   - pskyline: block-per-worker skylines merged with a parallel reduce
//   - qflow: Manhattan-norm sort plus parallel block sweep
//   - hybrid: pre-filtered, median-partitioned, score-sorted parallel
//     pipeline
//
// All algorithms produce the same skyline as a set; ordering is
// unspecified. Thread count never changes the result.
package skybench
