// Package lowrank denoises a spectral matrix by truncated singular value
// decomposition.
//
// 🚀 What does it do?
//
//	Filter ranks the orthogonal directions of the input by explained
//	variance, keeps the smallest prefix whose cumulative share reaches a
//	configured threshold, and reconstructs the matrix from those directions
//	only. The result has the same shape as the input, rank at most r, and
//	carries the per-direction variance ratios for inspection.
//
// Guarantees:
//   - the input matrix is never mutated,
//   - r never exceeds min(rows, cols); for any threshold ≤ 1 a full-rank
//     reconstruction exists, so no insufficient-rank condition can occur,
//   - the decomposition is deterministic: identical inputs give identical
//     reconstructions.
//
// Usage:
//
//	red, err := lowrank.Filter(X, 0.80)
//	if err != nil { ... }
//	denoised, r := red.Denoised, red.Rank
package lowrank
