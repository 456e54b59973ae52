package lowrank

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("lowrank: matrix must be non-nil")

	// ErrBadThreshold indicates a variance-coverage threshold outside (0, 1].
	ErrBadThreshold = errors.New("lowrank: threshold must be in (0, 1]")

	// ErrDecomposition indicates that the SVD failed to converge; this is a
	// pathological condition for finite inputs and propagates unmodified.
	ErrDecomposition = errors.New("lowrank: SVD factorization failed")
)

// Reduction is the output of Filter: the low-rank reconstruction, the number
// of retained directions, and the full explained-variance profile.
type Reduction struct {
	// Denoised is the projection of the input onto the top Rank directions.
	// Same shape as the input; rank ≤ Rank.
	Denoised *mat.Dense

	// Rank is the number of singular directions retained.
	Rank int

	// Ratios holds the explained-variance ratio of every direction,
	// descending, summing to 1 (up to floating error). len == min(rows, cols).
	Ratios []float64
}

// Option adjusts Filter behavior.
type Option func(*options)

type options struct {
	center bool
}

// WithCentering subtracts per-column means before the decomposition and adds
// them back after reconstruction. Standard PCA preprocessing; off by default
// because a downstream non-negative factorization prefers the raw scale.
func WithCentering() Option {
	return func(o *options) { o.center = true }
}

// Filter computes a truncated SVD reconstruction of X covering at least
// threshold of the total variance.
//
// Implementation:
//   - Stage 1: validate inputs; optionally center columns.
//   - Stage 2: thin SVD; explained-variance ratio of direction i is
//     σᵢ² / Σⱼ σⱼ²; r = smallest prefix with cumulative ratio ≥ threshold,
//     capped at min(rows, cols).
//   - Stage 3: reconstruct Denoised = U_r·Σ_r·V_rᵀ (plus means if centered).
//
// Inputs:
//   - X: non-nil dense matrix (n × m), not mutated.
//   - threshold: variance coverage target in (0, 1].
//
// Returns:
//   - *Reduction with Denoised (n × m), Rank, and the full ratio profile.
//
// Errors:
//   - ErrNilMatrix, ErrBadThreshold, ErrDecomposition.
//
// Determinism:
//   - Fully deterministic for identical inputs.
//
// Complexity:
//   - Time O(n·m·min(n,m)), Space O(n·m).
func Filter(X *mat.Dense, threshold float64, opts ...Option) (*Reduction, error) {
	if X == nil {
		return nil, ErrNilMatrix
	}
	if !(threshold > 0 && threshold <= 1) {
		return nil, fmt.Errorf("%w: got %g", ErrBadThreshold, threshold)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n, m := X.Dims()
	work := mat.DenseCopyOf(X)

	// Optional column centering (PCA-style preprocessing).
	var means []float64
	if o.center {
		means = make([]float64, m)
		for j := 0; j < m; j++ {
			col := mat.Col(nil, j, work)
			var sum float64
			for _, v := range col {
				sum += v
			}
			means[j] = sum / float64(n)
			for i := 0; i < n; i++ {
				work.Set(i, j, col[i]-means[j])
			}
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(work, mat.SVDThin); !ok {
		return nil, ErrDecomposition
	}
	sigma := svd.Values(nil)

	// Explained-variance ratios from squared singular values.
	var total float64
	for _, s := range sigma {
		total += s * s
	}
	ratios := make([]float64, len(sigma))
	if total > 0 {
		for i, s := range sigma {
			ratios[i] = s * s / total
		}
	}

	// Smallest prefix covering the threshold. A zero matrix has no variance
	// to explain; keep a single direction so the reconstruction is defined.
	rank := len(sigma)
	var cum float64
	for i, r := range ratios {
		cum += r
		if cum >= threshold {
			rank = i + 1
			break
		}
	}
	if rank < 1 {
		rank = 1
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Denoised = U_r · Σ_r · V_rᵀ.
	ur := u.Slice(0, n, 0, rank)
	vr := v.Slice(0, m, 0, rank)
	sr := mat.NewDiagDense(rank, sigma[:rank])

	denoised := mat.NewDense(n, m, nil)
	denoised.Product(ur, sr, vr.T())

	if o.center {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				denoised.Set(i, j, denoised.At(i, j)+means[j])
			}
		}
	}

	return &Reduction{Denoised: denoised, Rank: rank, Ratios: ratios}, nil
}

// CumulativeRatio reports the variance share explained by the first r
// directions of a Reduction. r outside [0, len(Ratios)] is clamped.
func (r *Reduction) CumulativeRatio(rank int) float64 {
	if rank < 0 {
		rank = 0
	}
	if rank > len(r.Ratios) {
		rank = len(r.Ratios)
	}
	var cum float64
	for _, v := range r.Ratios[:rank] {
		cum += v
	}

	return cum
}
