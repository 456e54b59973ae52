package dataset_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/specfactor/dataset"
)

// TestRead_SyntheticTable verifies that a small table with a known time
// column and integer features loads byte-exact: the spectral matrix equals
// the input values and the timestamp vector equals the time column, in order.
func TestRead_SyntheticTable(t *testing.T) {
	in := strings.Join([]string{
		"time,w100,w200,w300,w400",
		"0.0,1,2,3,4",
		"0.5,5,6,7,8",
		"1.0,9,10,11,12",
		"1.5,13,14,15,16",
		"2.0,17,18,19,20",
	}, "\n")

	tbl, err := dataset.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.NotNil(t, tbl)

	assert.Equal(t, 5, tbl.Rows(), "five samples")
	assert.Equal(t, 4, tbl.Cols(), "four wavenumber bins")
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, tbl.Times(), "timestamps in row order")
	assert.Equal(t, []string{"w100", "w200", "w300", "w400"}, tbl.Wavenumbers(), "header order preserved")

	want := 1.0
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, want, tbl.Spectra().At(i, j), "cell (%d,%d)", i, j)
			want++
		}
	}
}

// TestRead_MissingFeatureColumn feeds a data row one feature short of the
// header and expects ErrFormat with no partial table (end-to-end scenario:
// 989 features against a 990-feature header).
func TestRead_MissingFeatureColumn(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("time")
	for j := 1; j <= 990; j++ {
		fmt.Fprintf(&sb, ",w%d", j)
	}
	sb.WriteString("\n0.0")
	for j := 1; j <= 989; j++ { // one column short
		sb.WriteString(",1.0")
	}
	sb.WriteString("\n")

	tbl, err := dataset.Read(strings.NewReader(sb.String()))
	assert.ErrorIs(t, err, dataset.ErrFormat, "short row must be a format error")
	assert.Nil(t, tbl, "no partial table on failure")
}

// TestRead_NonNumericCell expects ErrFormat naming the offending column.
func TestRead_NonNumericCell(t *testing.T) {
	in := "time,a,b\n0.0,1.0,oops\n"

	tbl, err := dataset.Read(strings.NewReader(in))
	assert.ErrorIs(t, err, dataset.ErrFormat)
	assert.Nil(t, tbl)
	assert.Contains(t, err.Error(), `"b"`, "error should name the column")
}

// TestRead_NonNumericTime expects ErrFormat for a bad time tag.
func TestRead_NonNumericTime(t *testing.T) {
	in := "time,a\nnoon,1.0\n"

	_, err := dataset.Read(strings.NewReader(in))
	assert.ErrorIs(t, err, dataset.ErrFormat)
}

// TestRead_NonIncreasingTime verifies the strictly-increasing contract on
// the time column (the instrument cadence is fixed, so ties are malformed).
func TestRead_NonIncreasingTime(t *testing.T) {
	in := "time,a\n0.0,1\n0.5,2\n0.5,3\n"

	tbl, err := dataset.Read(strings.NewReader(in))
	assert.ErrorIs(t, err, dataset.ErrFormat)
	assert.Nil(t, tbl)
}

// TestRead_Empty covers an empty reader and a header-only table.
func TestRead_Empty(t *testing.T) {
	_, err := dataset.Read(strings.NewReader(""))
	assert.ErrorIs(t, err, dataset.ErrEmptyInput, "empty input")

	_, err = dataset.Read(strings.NewReader("time,a,b\n"))
	assert.ErrorIs(t, err, dataset.ErrEmptyInput, "header without data rows")
}

// TestRead_TooFewColumns rejects a header without feature columns.
func TestRead_TooFewColumns(t *testing.T) {
	_, err := dataset.Read(strings.NewReader("time\n1.0\n"))
	assert.ErrorIs(t, err, dataset.ErrFormat)
}

// TestLoad_File exercises the file path entry and the os error path.
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectra.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,a,b\n0,1,2\n1,3,4\n"), 0o644))

	tbl, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Rows())
	assert.Equal(t, 2, tbl.Cols())

	_, err = dataset.Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err, "missing file propagates the open error")
	assert.NotErrorIs(t, err, dataset.ErrFormat, "an os error is not a format error")
}
