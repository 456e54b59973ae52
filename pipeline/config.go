package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/specfactor/nmf"
)

// Defaults mirror the reference crystallization run; single source of truth.
const (
	// DefaultVarianceThreshold keeps directions until 80% of the variance
	// is explained (10 directions on the reference dataset).
	DefaultVarianceThreshold = 0.80

	// DefaultKMin / DefaultKMax bound the cluster-count sweep (2..9 in the
	// reference analysis).
	DefaultKMin = 2
	DefaultKMax = 9

	// DefaultSweepMaxRank caps the validation rank sweep (1..8).
	DefaultSweepMaxRank = 8

	// DefaultConnectivity is the neighbor count of the merge-constraint
	// graph; 0 disables it.
	DefaultConnectivity = 10

	// DefaultProbeIndex of -1 selects the middle sample for the pointwise
	// reconstruction check.
	DefaultProbeIndex = -1
)

// ErrBadConfig indicates an unusable configuration value.
var ErrBadConfig = errors.New("pipeline: bad config")

// NMFConfig is the yaml-facing view of nmf.Config; Init travels as a string.
type NMFConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
	Init      string  `yaml:"init"` // nndsvda | nndsvd | random
	Seed      int64   `yaml:"seed"`
}

// Config parameterizes one pipeline run. The yaml layout matches the field
// tags; Default() is the baseline and LoadConfig overlays a file on top of
// it, so a config file only needs the fields it changes.
type Config struct {
	// Input is the path to the reformatted spectra CSV.
	Input string `yaml:"input"`

	// VarianceThreshold is the cumulative explained-variance target of the
	// low-rank filter, in (0, 1].
	VarianceThreshold float64 `yaml:"variance_threshold"`

	// KMin, KMax bound the cluster-count sweep.
	KMin int `yaml:"k_min"`
	KMax int `yaml:"k_max"`

	// SweepMaxRank bounds the validation rank sweep (1..SweepMaxRank).
	SweepMaxRank int `yaml:"sweep_max_rank"`

	// ProbeIndex selects the sample for the pointwise reconstruction check;
	// negative means the middle sample.
	ProbeIndex int `yaml:"probe_index"`

	// Standardize scales columns to zero mean / unit variance before
	// clustering, as the reference analysis does.
	Standardize bool `yaml:"standardize"`

	// Connectivity is the k-NN merge-constraint neighbor count; 0 disables.
	Connectivity int `yaml:"connectivity"`

	// NMF configures the factorization and the validation refits.
	NMF NMFConfig `yaml:"nmf"`
}

// Default returns the reference-run configuration.
func Default() Config {
	return Config{
		VarianceThreshold: DefaultVarianceThreshold,
		KMin:              DefaultKMin,
		KMax:              DefaultKMax,
		SweepMaxRank:      DefaultSweepMaxRank,
		ProbeIndex:        DefaultProbeIndex,
		Standardize:       true,
		Connectivity:      DefaultConnectivity,
		NMF: NMFConfig{
			Tolerance: nmf.DefaultTolerance,
			MaxIter:   nmf.DefaultMaxIter,
			Init:      "nndsvda",
		},
	}
}

// LoadConfig overlays the yaml file at path onto Default().
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pipeline: read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	return cfg, nil
}

// nmfConfig resolves the yaml view into an nmf.Config.
func (c Config) nmfConfig() (nmf.Config, error) {
	out := nmf.Config{
		Tolerance: c.NMF.Tolerance,
		MaxIter:   c.NMF.MaxIter,
		Seed:      c.NMF.Seed,
	}
	switch c.NMF.Init {
	case "", "nndsvda":
		out.Init = nmf.InitNNDSVDA
	case "nndsvd":
		out.Init = nmf.InitNNDSVD
	case "random":
		out.Init = nmf.InitRandom
	default:
		return out, fmt.Errorf("%w: unknown nmf init %q", ErrBadConfig, c.NMF.Init)
	}

	return out, nil
}
