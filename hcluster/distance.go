package hcluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Euclidean is the plain L2 distance between two rows.
var Euclidean DistanceFunc = func(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean is the squared L2 distance; the natural input for Ward
// linkage.
var SquaredEuclidean DistanceFunc = func(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)

	return d * d
}

// DTWDistance returns a Dynamic Time Warping distance over the feature axis,
// treating each row as a curve (for spectra: intensity over wavenumber).
// Useful when clustering should tolerate small axis shifts, e.g. peak drift
// between scans.
//
// window bounds the warp band: cell (i, j) is reachable only when
// |i-j| ≤ window (Sakoe-Chiba). window ≤ 0 means unconstrained. Only two DP
// rows are kept, so memory stays O(len(b)); no alignment path is recovered,
// a distance is all a DistanceFunc may return.
//
// Complexity: O(len(a)·len(b)) time, O(len(b)) memory per call.
func DTWDistance(window int) DistanceFunc {
	return func(a, b []float64) float64 {
		n, m := len(a), len(b)
		if n == 0 || m == 0 {
			return math.Inf(1)
		}

		inf := math.Inf(1)
		prev := make([]float64, m+1)
		curr := make([]float64, m+1)
		for j := 1; j <= m; j++ {
			prev[j] = inf
		}

		var cost, best float64
		for i := 1; i <= n; i++ {
			curr[0] = inf
			if i == 1 {
				// D[0][0] = 0 lives in prev[0] on the first pass only.
				prev[0] = 0
			} else {
				prev[0] = inf
			}
			for j := 1; j <= m; j++ {
				if window > 0 && abs(i-j) > window {
					curr[j] = inf
					continue
				}
				cost = math.Abs(a[i-1] - b[j-1])
				best = prev[j-1] // match
				if prev[j] < best {
					best = prev[j] // insertion
				}
				if curr[j-1] < best {
					best = curr[j-1] // deletion
				}
				curr[j] = cost + best
			}
			prev, curr = curr, prev
		}

		return prev[m]
	}
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
