// Package pipeline wires the analysis stages into a single one-shot run:
//
//	load → variance filter → cluster-count selection → factorization → validation
//
// Data flows strictly forward; the only cross-edge is the chosen cluster
// count parameterizing the factorization rank. Every stage is a pure
// function of its inputs, so a Run has no state beyond its Result and can be
// repeated, or executed concurrently on different inputs, without
// coordination.
//
// Run reads a CSV and calls Analyze; Analyze works on an in-memory Table,
// which is the entry point for callers that already hold data (for example
// a plotting layer re-running the analysis with different settings).
//
// Fatal conditions abort the run with an error. Two conditions are
// deliberately softer, mirroring the interactive origin of this analysis:
//   - an unconverged factorization logs a warning and keeps the best-effort
//     factors,
//   - disagreement among the cluster-validity signals returns
//     hcluster.ErrAmbiguousSelection together with the complete score table,
//     leaving the decision to the analyst.
package pipeline
