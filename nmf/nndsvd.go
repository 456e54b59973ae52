package nmf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// nndsvd seeds W (n × k) and H (k × m) from the truncated SVD of X
// (Boutsidis-Gallopoulos initialization).
//
// Implementation:
//   - Stage 1: thin SVD of X.
//   - Stage 2: leading pair from |u₀|, |v₀| scaled by √σ₀ (the leading
//     singular pair of a non-negative matrix is sign-consistent, abs makes
//     the choice explicit).
//   - Stage 3: for j ≥ 1, split uⱼ, vⱼ into positive and negative parts and
//     keep whichever part pair carries the larger mass, rescaled to preserve
//     σⱼ.
//   - Stage 4 (variant "a" only): replace zeros with the matrix mean so that
//     multiplicative updates can still move every entry.
//
// Deterministic: no randomness anywhere; identical X gives identical seeds.
func nndsvd(X *mat.Dense, k int, fillZeros bool) (*mat.Dense, *mat.Dense, error) {
	n, m := X.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return nil, nil, ErrDecomposition
	}
	sigma := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	W := mat.NewDense(n, k, nil)
	H := mat.NewDense(k, m, nil)

	// Leading component: non-negative by Perron-Frobenius, up to sign.
	s0 := math.Sqrt(sigma[0])
	for i := 0; i < n; i++ {
		W.Set(i, 0, s0*math.Abs(u.At(i, 0)))
	}
	for j := 0; j < m; j++ {
		H.Set(0, j, s0*math.Abs(v.At(j, 0)))
	}

	up := make([]float64, n)
	un := make([]float64, n)
	vp := make([]float64, m)
	vn := make([]float64, m)
	for c := 1; c < k && c < len(sigma); c++ {
		var upn, unn, vpn, vnn float64 // part norms
		for i := 0; i < n; i++ {
			x := u.At(i, c)
			up[i], un[i] = math.Max(x, 0), math.Max(-x, 0)
			upn += up[i] * up[i]
			unn += un[i] * un[i]
		}
		for j := 0; j < m; j++ {
			y := v.At(j, c)
			vp[j], vn[j] = math.Max(y, 0), math.Max(-y, 0)
			vpn += vp[j] * vp[j]
			vnn += vn[j] * vn[j]
		}
		upn, unn = math.Sqrt(upn), math.Sqrt(unn)
		vpn, vnn = math.Sqrt(vpn), math.Sqrt(vnn)

		// Keep the sign-consistent part pair with the larger mass.
		mp, mn := upn*vpn, unn*vnn
		var uc, vc []float64
		var uNorm, vNorm, mass float64
		if mp >= mn {
			uc, vc, uNorm, vNorm, mass = up, vp, upn, vpn, mp
		} else {
			uc, vc, uNorm, vNorm, mass = un, vn, unn, vnn, mn
		}
		if mass == 0 {
			continue // degenerate direction; leave zeros for the fill pass
		}

		scale := math.Sqrt(sigma[c] * mass)
		for i := 0; i < n; i++ {
			W.Set(i, c, scale*uc[i]/uNorm)
		}
		for j := 0; j < m; j++ {
			H.Set(c, j, scale*vc[j]/vNorm)
		}
	}

	if fillZeros {
		mean := matrixMean(X)
		fill := mean
		if fill <= 0 {
			fill = 1e-8
		}
		replaceZeros(W, fill)
		replaceZeros(H, fill)
	}

	return W, H, nil
}

// matrixMean is the mean of all entries of X.
func matrixMean(X *mat.Dense) float64 {
	n, m := X.Dims()
	raw := X.RawMatrix()
	var sum float64
	for i := 0; i < n; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+m]
		for _, v := range row {
			sum += v
		}
	}

	return sum / float64(n*m)
}

// replaceZeros writes fill over every zero entry of M, in place.
func replaceZeros(M *mat.Dense, fill float64) {
	r, c := M.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if M.At(i, j) == 0 {
				M.Set(i, j, fill)
			}
		}
	}
}
