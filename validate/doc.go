// Package validate provides the two read-only checks that close the
// analysis loop: a factorization-rank sweep and a pointwise reconstruction
// probe.
//
// RankSweep refits the non-negative factorization across a range of ranks
// and tabulates the Frobenius residual of each fit. The best achievable
// residual is non-increasing in the rank (up to numerical tolerance), so the
// elbow of this table confirms, or challenges, a previously chosen rank.
//
// ReconstructSample rebuilds a single sample's spectrum from its weight row
// and the basis matrix, then compares it feature by feature against the
// original, pre-filter measurement. The reference analysis probes a
// nucleation-phase sample and expects relative residuals under a few
// percent.
//
// Neither check feeds anything back into the factorization; they exist so
// the analyst can trust (or reject) the chosen rank.
package validate
