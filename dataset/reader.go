// Package dataset loads and generates skyline workloads.
//
// The on-disk format is CSV without a header: one point per line, d
// comma-separated decimal numbers, optionally preceded by a line-number
// column that is ignored. Duplicate rows are allowed; the reader does not
// enforce the distinct value condition.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type readOptions struct {
	lineNumbers bool
	normalize   bool
}

// ReadOption configures Read.
type ReadOption func(*readOptions)

// WithLineNumbers makes the reader drop the first column of every row.
func WithLineNumbers() ReadOption {
	return func(o *readOptions) { o.lineNumbers = true }
}

// WithNormalization rescales each dimension to [0,1] using the per-column
// min and max after reading.
func WithNormalization() ReadOption {
	return func(o *readOptions) { o.normalize = true }
}

// Read loads all points from the file at path. Every row must have the same
// width as the first.
func Read(path string, opts ...ReadOption) ([][]float32, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var rows [][]float32
	dims := -1
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if o.lineNumbers {
			fields = fields[1:]
		}
		row := make([]float32, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, fmt.Errorf("dataset %s line %d: %w", path, lineno, err)
			}
			row = append(row, float32(v))
		}
		if dims == -1 {
			dims = len(row)
		} else if len(row) != dims {
			return nil, fmt.Errorf("dataset %s line %d: expected %d values, got %d", path, lineno, dims, len(row))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	if o.normalize {
		Normalize(rows)
	}
	return rows, nil
}

// Normalize rescales every dimension of rows to [0,1] in place using the
// per-column min and max. Constant columns become all zeros.
func Normalize(rows [][]float32) {
	if len(rows) == 0 {
		return
	}
	dims := len(rows[0])
	mins := make([]float32, dims)
	maxs := make([]float32, dims)
	copy(mins, rows[0])
	copy(maxs, rows[0])
	for _, row := range rows[1:] {
		for j, v := range row {
			if v < mins[j] {
				mins[j] = v
			} else if v > maxs[j] {
				maxs[j] = v
			}
		}
	}
	for _, row := range rows {
		for j := range row {
			if span := maxs[j] - mins[j]; span > 0 {
				row[j] = (row[j] - mins[j]) / span
			} else {
				row[j] = 0
			}
		}
	}
}
