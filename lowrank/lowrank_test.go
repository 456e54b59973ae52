package lowrank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/specfactor/lowrank"
)

// TestFilter_ShapePreserved verifies that the denoised matrix always has the
// input's shape, whatever the threshold keeps.
func TestFilter_ShapePreserved(t *testing.T) {
	X := mat.NewDense(6, 5, []float64{
		1, 2, 0, 1, 3,
		2, 4, 1, 0, 1,
		0, 1, 5, 2, 2,
		3, 0, 2, 4, 0,
		1, 1, 1, 1, 1,
		2, 3, 0, 2, 5,
	})

	for _, threshold := range []float64{0.5, 0.8, 1.0} {
		red, err := lowrank.Filter(X, threshold)
		require.NoError(t, err, "threshold %g", threshold)
		r, c := red.Denoised.Dims()
		assert.Equal(t, 6, r)
		assert.Equal(t, 5, c)
		assert.GreaterOrEqual(t, red.Rank, 1)
		assert.LessOrEqual(t, red.Rank, 5, "rank capped at min(rows, cols)")
	}
}

// TestFilter_ThresholdBoundary pins the retained count on a matrix with
// known singular values: diag(4,2,1,1) gives variance shares 16/22, 4/22,
// 1/22, 1/22. At threshold 0.9 exactly two directions are needed, and the
// coverage at one fewer direction must fall below the threshold.
func TestFilter_ThresholdBoundary(t *testing.T) {
	X := mat.NewDense(4, 4, []float64{
		4, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	red, err := lowrank.Filter(X, 0.9)
	require.NoError(t, err)

	assert.Equal(t, 2, red.Rank)
	assert.GreaterOrEqual(t, red.CumulativeRatio(red.Rank), 0.9, "coverage at r meets the threshold")
	assert.Less(t, red.CumulativeRatio(red.Rank-1), 0.9, "coverage at r-1 falls short")
	assert.InDelta(t, 1.0, red.CumulativeRatio(len(red.Ratios)), 1e-12, "ratios sum to one")
}

// TestFilter_ExactLowRank reconstructs an exactly rank-1 matrix to floating
// precision once the threshold admits its only direction.
func TestFilter_ExactLowRank(t *testing.T) {
	// Outer product: rank 1 by construction.
	u := []float64{1, 2, 3}
	v := []float64{2, 1, 4, 3}
	X := mat.NewDense(3, 4, nil)
	for i, a := range u {
		for j, b := range v {
			X.Set(i, j, a*b)
		}
	}

	red, err := lowrank.Filter(X, 0.99)
	require.NoError(t, err)

	assert.Equal(t, 1, red.Rank)
	assert.True(t, mat.EqualApprox(X, red.Denoised, 1e-10), "rank-1 input reconstructs exactly")
}

// TestFilter_BadInputs covers the threshold domain and the nil matrix.
func TestFilter_BadInputs(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	for _, threshold := range []float64{0, -0.5, 1.0001} {
		_, err := lowrank.Filter(X, threshold)
		assert.ErrorIs(t, err, lowrank.ErrBadThreshold, "threshold %g", threshold)
	}

	_, err := lowrank.Filter(nil, 0.8)
	assert.ErrorIs(t, err, lowrank.ErrNilMatrix)
}

// TestFilter_WithCentering checks that centering round-trips: at full
// coverage the reconstruction equals the input, means restored.
func TestFilter_WithCentering(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		10, 2, 7,
		11, 4, 7,
		12, 6, 7,
		13, 8, 7,
	})

	red, err := lowrank.Filter(X, 1.0, lowrank.WithCentering())
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(X, red.Denoised, 1e-10), "full-rank centered reconstruction is exact")
}
