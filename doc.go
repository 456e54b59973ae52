// Package specfactor recovers latent chemical signatures from time-ordered
// Raman spectra of a crystallization run, end to end: denoise, cluster,
// factorize, validate.
//
// 🚀 What is specfactor?
//
//	A batch analysis toolkit for in-situ spectral monitoring that brings together:
//		• Loading: tabular spectra (time tag + wavenumber bins) into dense matrices
//		• Variance filtering: truncated SVD denoising with explained-variance control
//		• Cluster selection: agglomerative clustering with four validity scores
//		• Factorization: non-negative matrix factorization (NNDSVD init, multiplicative updates)
//		• Validation: rank sweeps and pointwise reconstruction checks
//
// ✨ Why choose specfactor?
//
//   - Deterministic - fixed seeds, SVD-based initialization, stable merge order
//   - Pure functions - every stage takes and returns value types, no hidden state
//   - Analyst-friendly - full score tables are always surfaced, never a silent tie-break
//   - Pure Go - numerical core on gonum, no cgo
//
// Everything is organized into small, stateless subpackages:
//
//	dataset/   — CSV loader: Spectral Matrix + Timestamp Vector
//	lowrank/   — truncated SVD variance filter
//	hcluster/  — agglomerative clustering, validity scores, k selection
//	nmf/       — non-negative matrix factorization
//	validate/  — rank sweep & reconstruction residual checks
//	pipeline/  — one-shot orchestration of the five stages
//	cmd/       — the specfactor CLI (run, sweep)
//
// A run flows strictly forward:
//
//	load → filter → select k → factorize → validate
//
// with the chosen cluster count feeding the factorization rank and nothing
// else looping back.
//
// See pipeline.Run for the canonical entry point, or the per-package
// example_test.go files for focused usage.
//
//	go get github.com/katalvlaran/specfactor
package specfactor
