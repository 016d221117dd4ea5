package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	path := writeFile(t, "1.0,2.0\n0.5,5\n5,0.5\n")
	rows, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 2}, {0.5, 5}, {5, 0.5}}, rows)
}

func TestReadSkipsBlankLines(t *testing.T) {
	path := writeFile(t, "1,2\n\n3,4\n")
	rows, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadLineNumbers(t *testing.T) {
	path := writeFile(t, "1,0.1,0.2\n2,0.3,0.4\n")
	rows, err := Read(path, WithLineNumbers())
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, rows)
}

func TestReadNormalization(t *testing.T) {
	path := writeFile(t, "0,10\n5,20\n10,15\n")
	rows, err := Read(path, WithNormalization())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rows[0][0], 1e-6)
	assert.InDelta(t, 0.5, rows[1][0], 1e-6)
	assert.InDelta(t, 1.0, rows[2][0], 1e-6)
	assert.InDelta(t, 0.0, rows[0][1], 1e-6)
	assert.InDelta(t, 1.0, rows[1][1], 1e-6)
	assert.InDelta(t, 0.5, rows[2][1], 1e-6)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = Read(writeFile(t, "1,2\nfoo,4\n"))
	assert.Error(t, err)

	_, err = Read(writeFile(t, "1,2\n1,2,3\n"))
	assert.Error(t, err)
}

func TestNormalizeConstantColumn(t *testing.T) {
	rows := [][]float32{{1, 3}, {1, 7}}
	Normalize(rows)
	assert.Equal(t, float32(0), rows[0][0])
	assert.Equal(t, float32(0), rows[1][0])
	assert.InDelta(t, 0.0, rows[0][1], 1e-6)
	assert.InDelta(t, 1.0, rows[1][1], 1e-6)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(50, 3, 42)
	b := Generate(50, 3, 42)
	c := Generate(50, 3, 43)

	require.Len(t, a, 50)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	for _, row := range a {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1))
		}
	}
}
