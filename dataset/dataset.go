package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrFormat indicates malformed or mis-shaped tabular input. Every
	// loader failure caused by the file contents wraps this sentinel, so
	// callers can match the whole taxonomy with errors.Is(err, ErrFormat).
	ErrFormat = errors.New("dataset: malformed input")

	// ErrEmptyInput indicates an input with no header or no data rows.
	ErrEmptyInput = fmt.Errorf("%w: no data rows", ErrFormat)
)

// Table is the loaded dataset: a dense spectral matrix paired row-wise with
// its timestamp vector. A Table is immutable once built; accessors return
// the backing values directly and callers must not modify them.
type Table struct {
	spectra *mat.Dense // rows = samples, cols = wavenumber bins
	times   []float64  // strictly increasing, len == rows
	names   []string   // wavenumber column names, header order preserved
}

// Spectra returns the sample × wavenumber intensity matrix.
func (t *Table) Spectra() *mat.Dense { return t.spectra }

// Times returns the per-sample time tags, in row order.
func (t *Table) Times() []float64 { return t.times }

// Wavenumbers returns the feature column names exactly as they appeared in
// the header; their order defines the wavenumber axis.
func (t *Table) Wavenumbers() []string { return t.names }

// Rows reports the number of samples.
func (t *Table) Rows() int { r, _ := t.spectra.Dims(); return r }

// Cols reports the number of wavenumber bins (excluding the time column).
func (t *Table) Cols() int { _, c := t.spectra.Dims(); return c }

// Load reads the file at path and parses it via Read.
// The only side effect is the read itself.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses comma-separated spectral data from r.
//
// Contract:
//   - first record is the header; its width fixes the expected column count,
//   - first column is the time tag, remaining columns are intensities,
//   - every cell must parse as float64,
//   - the time column must be strictly increasing.
//
// Errors: all shape and parse failures wrap ErrFormat and carry the
// offending row/column position. On error no partial Table is returned.
//
// Complexity: O(rows*cols) time and memory, single pass.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has %d columns, need a time column plus at least one feature", ErrFormat, len(header))
	}
	wantCols := len(header)
	names := make([]string, wantCols-1)
	copy(names, header[1:])

	var (
		times []float64
		cells []float64 // row-major intensity values
		row   int       // 1-based data row counter for messages
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader reports ragged rows itself; keep its position info.
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		row++
		if len(rec) != wantCols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrFormat, row, len(rec), wantCols)
		}

		tv, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: non-numeric time tag %q", ErrFormat, row, rec[0])
		}
		if n := len(times); n > 0 && tv <= times[n-1] {
			return nil, fmt.Errorf("%w: row %d: time tag %g does not increase (previous %g)", ErrFormat, row, tv, times[n-1])
		}
		times = append(times, tv)

		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, column %q: non-numeric cell %q", ErrFormat, row, names[j], cell)
			}
			cells = append(cells, v)
		}
	}
	if row == 0 {
		return nil, ErrEmptyInput
	}

	return &Table{
		spectra: mat.NewDense(row, wantCols-1, cells),
		times:   times,
		names:   names,
	}, nil
}
