// Package dataset loads tabular spectral measurements into dense matrices.
//
// The expected input is comma-separated text with a header row: the first
// column is a numeric time tag, every remaining column is the intensity at
// one wavenumber bin, one data row per sample. The loader preserves column
// order (it defines the wavenumber axis), verifies the declared shape, and
// rejects any non-numeric cell or non-increasing time column with ErrFormat.
//
// On success the caller receives a Table: an immutable pairing of the
// spectral matrix (rows = samples, columns = wavenumber bins) with its
// row-aligned timestamp vector. Nothing is retained or mutated after Load
// returns; a failed load produces no partial Table.
package dataset
