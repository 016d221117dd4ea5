package skybench

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/skybench/hybrid"
	"github.com/hupe1980/skybench/point"
)

// Config selects what a Runner executes.
type Config struct {
	// Algorithms lists registry names to run; empty means all.
	Algorithms []string
	// Threads lists the thread counts to benchmark; empty means {4}.
	// Single-threaded algorithms run once regardless.
	Threads []int
	// Alpha is the block size of the pipelined algorithms; 0 selects the
	// default.
	Alpha int
	// PQSize is the per-thread pre-filter queue capacity; 0 selects the
	// default.
	PQSize int
	// Verbose enables per-run logging and summary statistics.
	Verbose bool
}

// RunResult is the outcome of one algorithm × thread-count execution.
type RunResult struct {
	Algorithm string
	Threads   int
	Elapsed   time.Duration
	Skyline   []uint32
}

// Mismatch records a run whose output set disagreed with the first run.
type Mismatch struct {
	// Run indexes into Report.Results.
	Run int
	// Missing holds ids present in the reference output but absent here.
	Missing []uint32
	// Extra holds ids present here but absent from the reference output.
	Extra []uint32
}

// Report is the outcome of a full Runner pass.
type Report struct {
	Results     []RunResult
	Mismatches  []Mismatch
	SkylineSize int
}

// Passed reports whether every run produced the same skyline set.
func (r *Report) Passed() bool { return len(r.Mismatches) == 0 }

// Runner executes a benchmark configuration against one workload.
type Runner struct {
	cfg    Config
	logger *Logger
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: NoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every configured algorithm × thread-count pair on rows,
// cross-checking all outputs for set equality. Each run gets a fresh
// algorithm value over its own copy of the input.
func (r *Runner) Run(rows [][]float32) (*Report, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if dims := len(rows[0]); dims > point.MaxDims {
		return nil, &ErrDimensionOverflow{Dims: dims}
	}

	algorithms := r.cfg.Algorithms
	if len(algorithms) == 0 {
		algorithms = Algorithms()
	}
	threads := r.cfg.Threads
	if len(threads) == 0 {
		threads = []int{4}
	}
	for _, t := range threads {
		if t < 1 {
			return nil, &ErrInvalidThreads{Threads: t}
		}
	}
	alpha := r.cfg.Alpha
	if alpha <= 0 {
		alpha = hybrid.DefaultAlpha
	}
	pqSize := r.cfg.PQSize
	if pqSize <= 0 {
		pqSize = hybrid.DefaultPQSize
	}

	report := &Report{}
	for _, name := range algorithms {
		runThreads := threads
		if !IsParallel(name) {
			runThreads = []int{1}
		}
		for _, t := range runThreads {
			alg, err := newAlgorithm(name, rows, t, alpha, pqSize)
			if err != nil {
				return nil, err
			}

			began := time.Now()
			skyline := alg.Execute()
			elapsed := time.Since(began)

			if r.cfg.Verbose {
				r.logger.WithAlgorithm(name, t).Info("run complete",
					"elapsed", elapsed,
					"skyline_size", len(skyline),
				)
			}
			report.Results = append(report.Results, RunResult{
				Algorithm: name,
				Threads:   t,
				Elapsed:   elapsed,
				Skyline:   skyline,
			})
		}
	}

	r.crossCheck(report)
	if r.cfg.Verbose {
		r.summarize(report)
	}
	return report, nil
}

// crossCheck compares every run's output set against the first run's.
// Mismatching runs are recorded with the symmetric difference of the two id
// sets; execution continues regardless.
func (r *Runner) crossCheck(report *Report) {
	if len(report.Results) == 0 {
		return
	}
	ref := roaring.BitmapOf(report.Results[0].Skyline...)
	report.SkylineSize = int(ref.GetCardinality())

	for i := 1; i < len(report.Results); i++ {
		got := roaring.BitmapOf(report.Results[i].Skyline...)
		if got.Equals(ref) {
			continue
		}
		missing := roaring.AndNot(ref, got)
		extra := roaring.AndNot(got, ref)
		mismatch := Mismatch{
			Run:     i,
			Missing: missing.ToArray(),
			Extra:   extra.ToArray(),
		}
		report.Mismatches = append(report.Mismatches, mismatch)
		if r.cfg.Verbose {
			res := report.Results[i]
			r.logger.WithAlgorithm(res.Algorithm, res.Threads).Error("skyline mismatch",
				"run", i,
				"missing", len(mismatch.Missing),
				"extra", len(mismatch.Extra),
			)
		}
	}
}

// summarize logs per-algorithm timing statistics across thread counts.
func (r *Runner) summarize(report *Report) {
	byAlg := make(map[string][]float64)
	order := make([]string, 0, len(report.Results))
	for _, res := range report.Results {
		if _, seen := byAlg[res.Algorithm]; !seen {
			order = append(order, res.Algorithm)
		}
		byAlg[res.Algorithm] = append(byAlg[res.Algorithm], float64(res.Elapsed.Milliseconds()))
	}
	for _, name := range order {
		samples := byAlg[name]
		mean, std := stat.MeanStdDev(samples, nil)
		if len(samples) < 2 {
			std = 0
		}
		r.logger.Info("summary",
			"algorithm", name,
			"runs", len(samples),
			"mean_ms", mean,
			"stddev_ms", std,
		)
	}
}
