package validate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/specfactor/nmf"
)

var (
	// ErrNilInput indicates a nil matrix or factorization result.
	ErrNilInput = errors.New("validate: input must be non-nil")

	// ErrBadRange indicates an invalid rank-sweep range.
	ErrBadRange = errors.New("validate: rank range must satisfy 1 ≤ kMin ≤ kMax ≤ min(rows, cols)")

	// ErrBadIndex indicates a sample index outside the matrix rows.
	ErrBadIndex = errors.New("validate: sample index out of range")
)

// relGuard floors the denominator of relative residuals so that zero-valued
// features report absolute error instead of dividing by zero.
const relGuard = 1e-12

// RankResidual is one row of the rank-sweep table.
type RankResidual struct {
	// Rank is the factorization rank of this fit.
	Rank int

	// Residual is the Frobenius norm of X − W·H for the best fit found.
	Residual float64

	// Converged mirrors the fit's convergence flag; an unconverged row may
	// sit above the true best-fit curve.
	Converged bool
}

// RankSweep refits the factorization independently for every rank in
// [kMin, kMax] and returns the residual table, ordered by ascending rank.
// Each fit uses the same Config, so rows differ only in rank. The table is
// exposed whole: confirming that the chosen rank sits at the elbow is the
// analyst's call.
func RankSweep(X *mat.Dense, kMin, kMax int, cfg nmf.Config) ([]RankResidual, error) {
	if X == nil {
		return nil, ErrNilInput
	}
	n, m := X.Dims()
	limit := n
	if m < limit {
		limit = m
	}
	if kMin < 1 || kMax < kMin || kMax > limit {
		return nil, fmt.Errorf("%w: kMin=%d, kMax=%d, min(rows, cols)=%d", ErrBadRange, kMin, kMax, limit)
	}

	table := make([]RankResidual, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		res, err := nmf.Factorize(X, k, cfg)
		if err != nil {
			return nil, fmt.Errorf("validate: rank %d: %w", k, err)
		}
		table = append(table, RankResidual{Rank: k, Residual: res.Residual, Converged: res.Converged})
	}

	return table, nil
}

// SampleCheck is the outcome of one pointwise reconstruction probe.
type SampleCheck struct {
	// Index is the probed sample (row of the original matrix).
	Index int

	// Reconstructed is the rebuilt spectrum W[Index,:]·H, length = features.
	Reconstructed []float64

	// Residual is the per-feature relative residual
	// |original − reconstructed| / max(|original|, ε).
	Residual []float64

	// MaxRel and MedianRel summarize Residual.
	MaxRel, MedianRel float64
}

// ReconstructSample rebuilds sample idx from the factorization and compares
// it element-wise against the original (pre-filter) matrix. Read-only with
// respect to both inputs.
func ReconstructSample(res *nmf.Result, original *mat.Dense, idx int) (*SampleCheck, error) {
	if res == nil || res.W == nil || res.H == nil || original == nil {
		return nil, ErrNilInput
	}
	n, m := original.Dims()
	if idx < 0 || idx >= n {
		return nil, fmt.Errorf("%w: index=%d, rows=%d", ErrBadIndex, idx, n)
	}

	// Reconstructed spectrum: the idx-th row of W applied to H.
	k, _ := res.H.Dims()
	rec := make([]float64, m)
	for j := 0; j < m; j++ {
		var acc float64
		for c := 0; c < k; c++ {
			acc += res.W.At(idx, c) * res.H.At(c, j)
		}
		rec[j] = acc
	}

	resid := make([]float64, m)
	for j := 0; j < m; j++ {
		orig := original.At(idx, j)
		denom := math.Abs(orig)
		if denom < relGuard {
			denom = relGuard
		}
		resid[j] = math.Abs(orig-rec[j]) / denom
	}

	check := &SampleCheck{
		Index:         idx,
		Reconstructed: rec,
		Residual:      resid,
		MaxRel:        floatsMax(resid),
		MedianRel:     floatsMedian(resid),
	}

	return check, nil
}

func floatsMax(v []float64) float64 {
	best := math.Inf(-1)
	for _, x := range v {
		if x > best {
			best = x
		}
	}

	return best
}

func floatsMedian(v []float64) float64 {
	s := append([]float64(nil), v...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}

	return (s[n/2-1] + s[n/2]) / 2
}
