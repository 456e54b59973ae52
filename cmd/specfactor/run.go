package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/specfactor/hcluster"
	"github.com/katalvlaran/specfactor/pipeline"
	"github.com/katalvlaran/specfactor/validate"
)

// buildConfig resolves config file, environment, and flags, in that
// precedence order (later wins). SPECFACTOR_INPUT names the input CSV when
// no flag is given.
func buildConfig(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if env := os.Getenv("SPECFACTOR_INPUT"); env != "" && cfg.Input == "" {
		cfg.Input = env
	}

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Input, _ = f.GetString("input")
	}
	if f.Changed("threshold") {
		cfg.VarianceThreshold, _ = f.GetFloat64("threshold")
	}
	if f.Changed("k-min") {
		cfg.KMin, _ = f.GetInt("k-min")
	}
	if f.Changed("k-max") {
		cfg.KMax, _ = f.GetInt("k-max")
	}
	if f.Changed("sweep-max") {
		cfg.SweepMaxRank, _ = f.GetInt("sweep-max")
	}
	if f.Changed("probe") {
		cfg.ProbeIndex, _ = f.GetInt("probe")
	}
	if f.Changed("max-iter") {
		cfg.NMF.MaxIter, _ = f.GetInt("max-iter")
	}
	if cfg.Input == "" {
		return cfg, fmt.Errorf("no input: pass --input, set SPECFACTOR_INPUT, or name it in the config file")
	}

	return cfg, nil
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "yaml config file (flags override it)")
	cmd.Flags().String("input", "", "reformatted spectra CSV")
	cmd.Flags().Float64("threshold", pipeline.DefaultVarianceThreshold, "explained-variance coverage target")
	cmd.Flags().Int("k-min", pipeline.DefaultKMin, "smallest cluster count to sweep")
	cmd.Flags().Int("k-max", pipeline.DefaultKMax, "largest cluster count to sweep")
	cmd.Flags().Int("sweep-max", pipeline.DefaultSweepMaxRank, "largest rank in the validation sweep")
	cmd.Flags().Int("probe", pipeline.DefaultProbeIndex, "sample index for the reconstruction probe (-1 = middle)")
	cmd.Flags().Int("max-iter", 0, "factorization iteration cap (0 = default)")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline",
		Long:  "Load the spectra table and run denoising, cluster selection, factorization, and validation; print every result table.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			res, err := pipeline.Run(cfg)
			if errors.Is(err, hcluster.ErrAmbiguousSelection) {
				// Manual checkpoint: show the analyst the evidence, then fail.
				printScores(cmd, res.Scores)
				return err
			}
			if err != nil {
				return err
			}

			printScores(cmd, res.Scores)
			cmd.Printf("\nchosen cluster count: %d (variance filter kept %d directions)\n\n",
				res.K, res.Reduction.Rank)
			printRankTable(cmd, res.RankTable)
			cmd.Printf("\nprobe sample %d: max relative residual %.4f, median %.4f\n",
				res.Probe.Index, res.Probe.MaxRel, res.Probe.MedianRel)

			return nil
		},
	}
	addCommonFlags(cmd)

	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Print the validity-score and rank-residual tables only",
		Long:  "Run the sweeps without committing to a cluster count; useful when the automatic selection was ambiguous.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			res, err := pipeline.Run(cfg)
			if err != nil && !errors.Is(err, hcluster.ErrAmbiguousSelection) {
				return err
			}
			printScores(cmd, res.Scores)
			if res.RankTable != nil {
				cmd.Println()
				printRankTable(cmd, res.RankTable)
			}

			return nil
		},
	}
	addCommonFlags(cmd)

	return cmd
}

func printScores(cmd *cobra.Command, scores []hcluster.Score) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "k\tWCSS\tsilhouette\tCalinski-Harabasz\tDavies-Bouldin")
	for _, s := range scores {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.K, s.WCSS, s.Silhouette, s.CalinskiHarabasz, s.DaviesBouldin)
	}
	_ = w.Flush()
}

func printRankTable(cmd *cobra.Command, table []validate.RankResidual) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "rank\tresidual\tconverged")
	for _, r := range table {
		fmt.Fprintf(w, "%d\t%.6f\t%v\n", r.Rank, r.Residual, r.Converged)
	}
	_ = w.Flush()
}
