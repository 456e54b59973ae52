package nmf

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// InitMethod selects how the factors are seeded before the update loop.
type InitMethod int

const (
	// InitNNDSVDA seeds from the truncated SVD with zero entries replaced
	// by the matrix mean. The default: deterministic, and free of the
	// zero-locking that pure NNDSVD causes under multiplicative updates
	// (a multiplicative update can never revive an exactly-zero entry).
	InitNNDSVDA InitMethod = iota

	// InitNNDSVD seeds from the truncated SVD, keeping exact zeros.
	// Preferable when the data is believed to be exactly low-rank with
	// non-negative singular structure; the init is then already optimal.
	InitNNDSVD

	// InitRandom seeds both factors uniformly at random, scaled to the data
	// magnitude, from the fixed Seed in Config.
	InitRandom
)

// Defaults for Config; single source of truth.
const (
	// DefaultTolerance is the relative residual decrease below which the
	// update loop stops.
	DefaultTolerance = 1e-4

	// DefaultMaxIter caps the update loop. Reaching it is non-fatal.
	DefaultMaxIter = 500
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("nmf: matrix must be non-nil")

	// ErrNegativeInput indicates a negative entry in the input matrix.
	// Clip small decomposition residue first (see ClipNegatives).
	ErrNegativeInput = errors.New("nmf: input must be element-wise non-negative")

	// ErrBadRank indicates a target rank outside [1, min(rows, cols)].
	ErrBadRank = errors.New("nmf: rank must be in [1, min(rows, cols)]")

	// ErrDecomposition indicates that the SVD used for NNDSVD seeding
	// failed to converge; propagated unmodified.
	ErrDecomposition = errors.New("nmf: SVD initialization failed")
)

// Config determines the behavior of a Factorize call.
// The zero value is usable: zero Tolerance and MaxIter fall back to the
// documented defaults, Init defaults to InitNNDSVDA.
type Config struct {
	// Tolerance is the stopping threshold on the relative decrease of the
	// Frobenius residual between consecutive iterations.
	Tolerance float64

	// MaxIter is the maximum number of multiplicative-update iterations.
	MaxIter int

	// Init selects the seeding strategy.
	Init InitMethod

	// Seed drives InitRandom; ignored by the SVD-based seedings, which are
	// deterministic on their own.
	Seed int64
}

// withDefaults resolves zero fields against the documented defaults.
func (c Config) withDefaults() Config {
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}

	return c
}

// Result is the outcome of one factorization. Factors are always populated,
// even when the tolerance was not met within the iteration cap.
type Result struct {
	// W is the n × k weight matrix (per-sample mixing coefficients).
	W *mat.Dense

	// H is the k × m basis matrix (latent spectra as rows).
	H *mat.Dense

	// Iterations is the number of update iterations performed.
	Iterations int

	// Converged reports whether the relative residual decrease fell below
	// Tolerance before MaxIter. False is a warning, not a failure.
	Converged bool

	// Residual is the final Frobenius norm of X − W·H.
	Residual float64
}
