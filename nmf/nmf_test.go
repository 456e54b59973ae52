package nmf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/specfactor/nmf"
)

// blockRankTwo builds a 6×4 matrix that is exactly the sum of two rank-one
// non-negative terms with disjoint supports: rows 0-2 are multiples of
// (1, 2, 0, 0), rows 3-5 of (0, 0, 3, 1). The two singular values differ, so
// the truncated SVD recovers the blocks exactly.
func blockRankTwo() *mat.Dense {
	return mat.NewDense(6, 4, []float64{
		1, 2, 0, 0,
		2, 4, 0, 0,
		3, 6, 0, 0,
		0, 0, 3, 1,
		0, 0, 3, 1,
		0, 0, 6, 2,
	})
}

// noisy returns a dense strictly positive matrix with no special structure.
func noisy() *mat.Dense {
	return mat.NewDense(6, 5, []float64{
		0.9, 2.1, 0.3, 1.7, 0.5,
		1.2, 0.4, 2.6, 0.8, 1.1,
		0.2, 1.9, 0.7, 2.3, 0.6,
		2.4, 0.3, 1.5, 0.1, 1.8,
		0.7, 1.1, 0.9, 1.3, 2.2,
		1.6, 0.8, 2.0, 0.5, 0.4,
	})
}

// TestFactorize_ExactRankTwo is the mixture-recovery scenario: an exactly
// rank-2 non-negative matrix must be reconstructed to numerical noise, with
// pure NNDSVD seeding already sitting at the optimum.
func TestFactorize_ExactRankTwo(t *testing.T) {
	X := blockRankTwo()

	res, err := nmf.Factorize(X, 2, nmf.Config{Init: nmf.InitNNDSVD})
	require.NoError(t, err)
	assert.True(t, res.Converged)

	rel := res.Residual / mat.Norm(X, 2)
	assert.Less(t, rel, 1e-6, "relative reconstruction error")

	var wh mat.Dense
	wh.Mul(res.W, res.H)
	assert.True(t, mat.EqualApprox(X, &wh, 1e-6), "W·H reproduces the input")
}

// TestFactorize_NonNegativity: both factors stay element-wise non-negative
// regardless of seeding.
func TestFactorize_NonNegativity(t *testing.T) {
	X := noisy()

	for _, init := range []nmf.InitMethod{nmf.InitNNDSVDA, nmf.InitNNDSVD, nmf.InitRandom} {
		res, err := nmf.Factorize(X, 2, nmf.Config{Init: init, Seed: 7})
		require.NoError(t, err, "init %v", init)

		for _, M := range []*mat.Dense{res.W, res.H} {
			r, c := M.Dims()
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					assert.GreaterOrEqual(t, M.At(i, j), 0.0, "init %v entry (%d,%d)", init, i, j)
				}
			}
		}
		assert.GreaterOrEqual(t, res.Iterations, 1)
	}
}

// TestFactorize_MaxIterCap: a tolerance no iteration count can meet makes the
// loop run exactly MaxIter times and report Converged=false, without error.
func TestFactorize_MaxIterCap(t *testing.T) {
	X := noisy()

	res, err := nmf.Factorize(X, 2, nmf.Config{
		Tolerance: 1e-16,
		MaxIter:   3,
		Init:      nmf.InitRandom,
		Seed:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Iterations)
	assert.False(t, res.Converged)
	assert.Greater(t, res.Residual, 0.0)
}

// TestFactorize_RandomSeedDeterminism: a fixed seed fixes the run.
func TestFactorize_RandomSeedDeterminism(t *testing.T) {
	X := noisy()
	cfg := nmf.Config{Init: nmf.InitRandom, Seed: 42, MaxIter: 20, Tolerance: 1e-16}

	a, err := nmf.Factorize(X, 2, cfg)
	require.NoError(t, err)
	b, err := nmf.Factorize(X, 2, cfg)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.W, b.W))
	assert.True(t, mat.Equal(a.H, b.H))
	assert.Equal(t, a.Residual, b.Residual)
}

// TestFactorize_Errors covers the input contract.
func TestFactorize_Errors(t *testing.T) {
	_, err := nmf.Factorize(nil, 2, nmf.Config{})
	assert.ErrorIs(t, err, nmf.ErrNilMatrix)

	neg := mat.NewDense(2, 2, []float64{1, -0.5, 2, 3})
	_, err = nmf.Factorize(neg, 1, nmf.Config{})
	assert.ErrorIs(t, err, nmf.ErrNegativeInput)

	X := blockRankTwo() // 6×4
	for _, k := range []int{0, -1, 5} {
		_, err = nmf.Factorize(X, k, nmf.Config{})
		assert.ErrorIs(t, err, nmf.ErrBadRank, "rank=%d", k)
	}
}

// TestClipNegatives zeroes negative residue and leaves the input alone.
func TestClipNegatives(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{1, -1e-9, 0, -2, 0.5, 3})

	out := nmf.ClipNegatives(X)

	assert.Equal(t, 0.0, out.At(0, 1))
	assert.Equal(t, 0.0, out.At(1, 0))
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 3.0, out.At(1, 2))
	assert.Equal(t, -2.0, X.At(1, 0), "input is not mutated")
}

// TestNormalizeRows: every nonzero row sums to one, zero rows pass through,
// and the input is untouched.
func TestNormalizeRows(t *testing.T) {
	W := mat.NewDense(3, 2, []float64{
		3, 1,
		0, 0,
		2, 8,
	})

	out := nmf.NormalizeRows(W)

	assert.InDelta(t, 0.75, out.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, out.At(0, 1), 1e-12)
	assert.Equal(t, 0.0, out.At(1, 0))
	assert.Equal(t, 0.0, out.At(1, 1))
	assert.InDelta(t, 0.2, out.At(2, 0), 1e-12)
	assert.InDelta(t, 0.8, out.At(2, 1), 1e-12)
	assert.Equal(t, 3.0, W.At(0, 0), "input is not mutated")
}
