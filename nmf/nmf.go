package nmf

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// updateGuard keeps multiplicative-update denominators away from zero.
const updateGuard = 1e-12

// Factorize fits non-negative W (n × k) and H (k × m) to X by Lee-Seung
// multiplicative updates on the Frobenius objective.
//
// Implementation:
//   - Stage 1: validate (non-nil, element-wise ≥ 0, 1 ≤ k ≤ min(n, m));
//     resolve Config defaults; seed W, H per cfg.Init.
//   - Stage 2: iterate
//     H ← H ⊙ (WᵀX) ⊘ (WᵀW·H + ε),
//     W ← W ⊙ (X·Hᵀ) ⊘ (W·H·Hᵀ + ε),
//     recomputing the Frobenius residual each pass, until the relative
//     decrease drops below Tolerance or MaxIter is reached.
//
// Behavior highlights:
//   - Non-negativity of both factors is preserved by construction at every
//     iteration, for any valid non-negative input.
//   - Hitting MaxIter is NOT an error: the best-effort factors are returned
//     with Converged=false and the caller decides how loudly to warn.
//   - X is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrNegativeInput, ErrBadRank, ErrDecomposition (seeding).
//
// Determinism:
//   - SVD-based seedings are fully deterministic; InitRandom is reproducible
//     for a fixed Config.Seed. Update order is fixed (H first, then W).
//
// Complexity:
//   - Time O(MaxIter · n·m·k), Space O(n·m) for the work buffers.
func Factorize(X *mat.Dense, k int, cfg Config) (*Result, error) {
	if X == nil {
		return nil, ErrNilMatrix
	}
	n, m := X.Dims()
	if k < 1 || k > n || k > m {
		return nil, fmt.Errorf("%w: rank=%d, shape=%d×%d", ErrBadRank, k, n, m)
	}
	if i, j, ok := firstNegative(X); ok {
		return nil, fmt.Errorf("%w: entry (%d,%d) = %g", ErrNegativeInput, i, j, X.At(i, j))
	}
	cfg = cfg.withDefaults()

	W, H, err := seed(X, k, cfg)
	if err != nil {
		return nil, err
	}

	var (
		wtx, wtw, hden mat.Dense // H-update buffers
		xht, hht, wden mat.Dense // W-update buffers
		wh, diff       mat.Dense // residual buffers
	)
	residual := frobResidual(X, W, H, &wh, &diff)

	res := &Result{W: W, H: H, Residual: residual}
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		// H ← H ⊙ (WᵀX) ⊘ (WᵀW·H + ε)
		wtx.Mul(W.T(), X)
		wtw.Mul(W.T(), W)
		hden.Mul(&wtw, H)
		hadamardQuotient(H, &wtx, &hden)

		// W ← W ⊙ (X·Hᵀ) ⊘ (W·H·Hᵀ + ε)
		xht.Mul(X, H.T())
		hht.Mul(H, H.T())
		wden.Mul(W, &hht)
		hadamardQuotient(W, &xht, &wden)

		prev := residual
		residual = frobResidual(X, W, H, &wh, &diff)
		res.Iterations = iter
		res.Residual = residual

		if prev > 0 && (prev-residual) <= cfg.Tolerance*prev {
			res.Converged = true
			break
		}
		if prev == 0 {
			res.Converged = true
			break
		}
	}

	return res, nil
}

// seed dispatches the configured initialization.
func seed(X *mat.Dense, k int, cfg Config) (*mat.Dense, *mat.Dense, error) {
	switch cfg.Init {
	case InitNNDSVD:
		return nndsvd(X, k, false)
	case InitRandom:
		W, H := randomSeed(X, k, cfg.Seed)
		return W, H, nil
	default:
		return nndsvd(X, k, true)
	}
}

// randomSeed draws both factors uniformly from [0, scale), where scale keeps
// the initial product near the data magnitude (√(mean(X)/k)).
func randomSeed(X *mat.Dense, k int, s int64) (*mat.Dense, *mat.Dense) {
	n, m := X.Dims()
	rng := rand.New(rand.NewSource(s))
	scale := math.Sqrt(matrixMean(X) / float64(k))
	if scale <= 0 {
		scale = 1e-8
	}

	W := mat.NewDense(n, k, nil)
	H := mat.NewDense(k, m, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < k; c++ {
			W.Set(i, c, scale*rng.Float64())
		}
	}
	for c := 0; c < k; c++ {
		for j := 0; j < m; j++ {
			H.Set(c, j, scale*rng.Float64())
		}
	}

	return W, H
}

// hadamardQuotient performs M ← M ⊙ num ⊘ (den + ε) in place.
// All three matrices share one shape; ε keeps the quotient finite without
// ever flipping a sign, so non-negativity is preserved.
func hadamardQuotient(M, num, den *mat.Dense) {
	r, c := M.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			M.Set(i, j, M.At(i, j)*num.At(i, j)/(den.At(i, j)+updateGuard))
		}
	}
}

// frobResidual computes ‖X − W·H‖_F using the provided scratch buffers.
func frobResidual(X, W, H *mat.Dense, wh, diff *mat.Dense) float64 {
	wh.Mul(W, H)
	diff.Sub(X, wh)

	return mat.Norm(diff, 2)
}

// firstNegative scans X in row-major order for a negative entry.
func firstNegative(X *mat.Dense) (int, int, bool) {
	n, m := X.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if X.At(i, j) < 0 {
				return i, j, true
			}
		}
	}

	return 0, 0, false
}

// ClipNegatives returns a copy of X with every negative entry set to zero.
// Intended for small negative residue left by a truncated decomposition
// upstream; the clip magnitude should be near floating noise.
func ClipNegatives(X *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(X)
	n, m := out.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if out.At(i, j) < 0 {
				out.Set(i, j, 0)
			}
		}
	}

	return out
}

// NormalizeRows returns a copy of W with every row rescaled to sum to 1,
// for interpretability as relative composition per sample. Rows summing to
// zero are left as-is. Presentation-only: the result must not be fed back
// into the factorization.
func NormalizeRows(W *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(W)
	n, k := out.Dims()
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < k; j++ {
			sum += out.At(i, j)
		}
		if sum == 0 {
			continue
		}
		for j := 0; j < k; j++ {
			out.Set(i, j, out.At(i, j)/sum)
		}
	}

	return out
}
