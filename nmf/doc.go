// Package nmf factorizes a non-negative matrix X (n × m) into non-negative
// factors W (n × k) and H (k × m) minimizing the Frobenius reconstruction
// error ‖X − W·H‖.
//
// 🚀 How it works:
//
//	Factors are seeded deterministically from the SVD of X (NNDSVD; a seeded
//	random start is available as an option) and refined with Lee-Seung
//	multiplicative updates. Every update preserves non-negativity exactly,
//	so the invariants W ≥ 0 and H ≥ 0 hold at all times, not just at
//	convergence.
//
// For spectral data, rows of H are the latent basis spectra ("chemical
// signatures") and rows of W the per-sample mixing weights; NormalizeRows
// rescales a weight matrix row-wise to relative compositions for
// presentation without touching H.
//
// Convergence is best-effort by design: hitting the iteration cap before the
// tolerance is not an error. The Result reports Converged=false and carries
// the factors reached, matching how an interactive analysis treats a slow
// fit - inspect, do not abort.
package nmf
