package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "specfactor"
	version = "v0.3.0"
)

func main() {
	// Optional .env next to the binary; absence is not an error.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Latent chemical-signature analysis for time-ordered Raman spectra",
		Version: version,
		Long: `specfactor runs the full crystallization analysis over a reformatted
spectra table: truncated-SVD denoising, agglomerative cluster-count
selection, non-negative matrix factorization, and reconstruction
validation. Results are printed as tables for the analyst; plotting is
left to downstream tooling.`,
	}

	rootCmd.AddCommand(newRunCmd(), newSweepCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("specfactor failed")
		os.Exit(1)
	}
}
