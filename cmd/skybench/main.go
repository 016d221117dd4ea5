// Command skybench benchmarks skyline algorithms on a CSV workload.
//
// Usage:
//
//	skybench -f workloads/house.csv -s "bskytree hybrid" -t "1 2 4" -v
//
// Non-verbose output is one line per algorithm × thread count with the
// elapsed milliseconds; verbose mode logs structured per-run reports and
// ends with PASSED or FAILED from the cross-algorithm set-equality check.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/skybench"
	"github.com/hupe1980/skybench/dataset"
)

var (
	flagFile        string
	flagAlgorithms  string
	flagThreads     string
	flagAlpha       int
	flagPQSize      int
	flagVerbose     bool
	flagNormalize   bool
	flagLineNumbers bool
)

var rootCmd = &cobra.Command{
	Use:   "skybench",
	Short: "Benchmark skyline algorithms on a CSV workload",
	Long: `skybench computes the skyline of a d-dimensional point set with several
algorithms across thread counts and compares the results for set equality.

Supported algorithms: bskytree, pbskytree, pskyline, qflow, hybrid.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "input CSV file (required)")
	rootCmd.Flags().StringVarP(&flagAlgorithms, "skylines", "s", "", `algorithms to run, e.g. "bskytree hybrid" (default all)`)
	rootCmd.Flags().StringVarP(&flagThreads, "threads", "t", "4", `thread counts, e.g. "1 2 4"`)
	rootCmd.Flags().IntVarP(&flagAlpha, "alpha", "a", 1024, "block size for the pipelined algorithms")
	rootCmd.Flags().IntVarP(&flagPQSize, "pq-size", "q", 8, "per-thread priority queue capacity for the hybrid pre-filter")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose mode with per-run reports and cross-check")
	rootCmd.Flags().BoolVar(&flagNormalize, "normalize", false, "rescale every dimension to [0,1] before running")
	rootCmd.Flags().BoolVar(&flagLineNumbers, "line-numbers", false, "ignore a leading line-number column")
	_ = rootCmd.MarkFlagRequired("file")
}

func run(cmd *cobra.Command, args []string) error {
	threads, err := parseThreads(flagThreads)
	if err != nil {
		return err
	}

	var readOpts []dataset.ReadOption
	if flagNormalize {
		readOpts = append(readOpts, dataset.WithNormalization())
	}
	if flagLineNumbers {
		readOpts = append(readOpts, dataset.WithLineNumbers())
	}
	rows, err := dataset.Read(flagFile, readOpts...)
	if err != nil {
		return err
	}

	cfg := skybench.Config{
		Algorithms: strings.Fields(flagAlgorithms),
		Threads:    threads,
		Alpha:      flagAlpha,
		PQSize:     flagPQSize,
		Verbose:    flagVerbose,
	}
	var opts []skybench.Option
	if flagVerbose {
		opts = append(opts, skybench.WithLogger(skybench.NewTextLogger(slog.LevelInfo)))
	}

	report, err := skybench.NewRunner(cfg, opts...).Run(rows)
	if err != nil {
		return err
	}

	if flagVerbose {
		fmt.Printf("n=%d d=%d skyline=%d\n", len(rows), len(rows[0]), report.SkylineSize)
		for _, m := range report.Mismatches {
			res := report.Results[m.Run]
			fmt.Printf("mismatch: run %d (%s t=%d) missing=%v extra=%v\n",
				m.Run, res.Algorithm, res.Threads, m.Missing, m.Extra)
		}
		if report.Passed() {
			fmt.Println("PASSED")
		} else {
			fmt.Println("FAILED")
		}
		return nil
	}

	for _, res := range report.Results {
		fmt.Printf("%s %d %d\n", res.Algorithm, res.Threads, res.Elapsed.Milliseconds())
	}
	return nil
}

func parseThreads(s string) ([]int, error) {
	fields := strings.Fields(s)
	threads := make([]int, 0, len(fields))
	for _, f := range fields {
		t, err := strconv.Atoi(f)
		if err != nil || t < 1 {
			return nil, fmt.Errorf("invalid thread count %q", f)
		}
		threads = append(threads, t)
	}
	return threads, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "skybench:", err)
		os.Exit(1)
	}
}
