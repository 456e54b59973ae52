package pipeline

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/specfactor/dataset"
	"github.com/katalvlaran/specfactor/hcluster"
	"github.com/katalvlaran/specfactor/lowrank"
	"github.com/katalvlaran/specfactor/nmf"
	"github.com/katalvlaran/specfactor/validate"
)

// Result bundles every derived entity of one run for the presentation
// collaborator: plain in-memory matrices and tables, no serialization
// mandated.
type Result struct {
	// Table is the loaded dataset (spectral matrix + timestamps).
	Table *dataset.Table

	// Reduction is the variance-filter output: denoised matrix, retained
	// direction count, explained-variance profile.
	Reduction *lowrank.Reduction

	// Scores is the full validity-score table over the swept cluster
	// counts; always populated once the sweep ran, even when selection was
	// ambiguous.
	Scores []hcluster.Score

	// Labelings are the row labelings per swept count, aligned with Scores.
	Labelings [][]int

	// K is the chosen cluster count; 0 when selection was ambiguous.
	K int

	// Labels is the assignment at K (nil when ambiguous).
	Labels []int

	// Factors is the non-negative factorization at rank K.
	Factors *nmf.Result

	// Weights is the presentation copy of Factors.W with rows normalized
	// to sum to 1.
	Weights *mat.Dense

	// RankTable is the validation rank sweep.
	RankTable []validate.RankResidual

	// Probe is the pointwise reconstruction check.
	Probe *validate.SampleCheck
}

// Run loads the CSV named by cfg.Input and analyzes it.
func Run(cfg Config) (*Result, error) {
	table, err := dataset.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	log.Info().Str("input", cfg.Input).Int("rows", table.Rows()).Int("cols", table.Cols()).
		Msg("dataset loaded")

	return Analyze(table, cfg)
}

// Analyze executes the forward pipeline over an in-memory Table.
//
// Stage order is fixed: variance filter, cluster sweep + selection,
// factorization at the chosen count, rank sweep, pointwise probe. An
// ambiguous cluster selection stops after the sweep and returns the partial
// Result together with hcluster.ErrAmbiguousSelection so the analyst can
// read the table and decide.
func Analyze(table *dataset.Table, cfg Config) (*Result, error) {
	nmfCfg, err := cfg.nmfConfig()
	if err != nil {
		return nil, err
	}
	out := &Result{Table: table}

	// Variance filter.
	red, err := lowrank.Filter(table.Spectra(), cfg.VarianceThreshold)
	if err != nil {
		return nil, err
	}
	out.Reduction = red
	log.Info().Int("rank", red.Rank).Float64("coverage", red.CumulativeRatio(red.Rank)).
		Msg("variance filter applied")

	// Cluster-count sweep and selection.
	var copts []hcluster.Option
	if cfg.Standardize {
		copts = append(copts, hcluster.WithStandardize())
	}
	if cfg.Connectivity > 0 {
		copts = append(copts, hcluster.WithConnectivity(cfg.Connectivity))
	}
	scores, labelings, err := hcluster.Sweep(red.Denoised, cfg.KMin, cfg.KMax, copts...)
	if err != nil {
		return nil, err
	}
	out.Scores = scores
	out.Labelings = labelings

	k, err := hcluster.ChooseK(scores)
	if err != nil {
		// Ambiguous selection is a manual checkpoint: hand the table back.
		log.Warn().Err(err).Msg("cluster-count selection deferred to analyst")
		return out, err
	}
	out.K = k
	out.Labels = labelings[k-cfg.KMin]
	log.Info().Int("k", k).Msg("cluster count selected")

	// Factorization at rank k over the clipped denoised matrix.
	X := nmf.ClipNegatives(red.Denoised)
	fact, err := nmf.Factorize(X, k, nmfCfg)
	if err != nil {
		return nil, err
	}
	out.Factors = fact
	out.Weights = nmf.NormalizeRows(fact.W)
	if !fact.Converged {
		log.Warn().Int("iterations", fact.Iterations).Float64("residual", fact.Residual).
			Msg("factorization hit the iteration cap; keeping best-effort factors")
	} else {
		log.Info().Int("iterations", fact.Iterations).Float64("residual", fact.Residual).
			Msg("factorization converged")
	}

	// Validation: rank sweep plus pointwise probe, both read-only.
	sweepMax := cfg.SweepMaxRank
	if n, m := X.Dims(); sweepMax > n || sweepMax > m {
		sweepMax = min(n, m)
	}
	out.RankTable, err = validate.RankSweep(X, 1, sweepMax, nmfCfg)
	if err != nil {
		return nil, err
	}

	probe := cfg.ProbeIndex
	if probe < 0 {
		probe = table.Rows() / 2
	}
	out.Probe, err = validate.ReconstructSample(fact, table.Spectra(), probe)
	if err != nil {
		return nil, err
	}
	log.Info().Int("sample", probe).Float64("max_rel", out.Probe.MaxRel).
		Float64("median_rel", out.Probe.MedianRel).Msg("reconstruction probe complete")

	return out, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
