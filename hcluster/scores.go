package hcluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// scoreLabeling computes the four validity scores for one labeling.
// rows are the (optionally standardized) observations the clustering ran on,
// so the scores describe exactly what the merge loop saw.
func scoreLabeling(rows [][]float64, labels []int, k int) Score {
	n := len(rows)
	m := len(rows[0])

	// Per-cluster centroids and sizes.
	centroids := make([][]float64, k)
	sizes := make([]int, k)
	for c := 0; c < k; c++ {
		centroids[c] = make([]float64, m)
	}
	for i, lbl := range labels {
		floats.Add(centroids[lbl], rows[i])
		sizes[lbl]++
	}
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			floats.Scale(1/float64(sizes[c]), centroids[c])
		}
	}

	// Grand centroid for the variance-ratio criterion.
	grand := make([]float64, m)
	for _, r := range rows {
		floats.Add(grand, r)
	}
	floats.Scale(1/float64(n), grand)

	return Score{
		K:                k,
		WCSS:             wcss(rows, labels, centroids),
		Silhouette:       silhouette(rows, labels, sizes, k),
		CalinskiHarabasz: calinskiHarabasz(rows, labels, centroids, sizes, grand),
		DaviesBouldin:    daviesBouldin(rows, labels, centroids, sizes),
	}
}

// wcss is the within-cluster sum of squared deviations from each cluster
// mean. The elbow of this curve over k is the primary selection signal.
func wcss(rows [][]float64, labels []int, centroids [][]float64) float64 {
	var total float64
	for i, r := range rows {
		c := centroids[labels[i]]
		for j := range r {
			d := r[j] - c[j]
			total += d * d
		}
	}

	return total
}

// silhouette is the mean silhouette coefficient over all points, using
// Euclidean distance. Points in singleton clusters contribute 0, the
// standard convention.
func silhouette(rows [][]float64, labels []int, sizes []int, k int) float64 {
	n := len(rows)

	// One pass of pairwise distances; n is small by design.
	d := make([][]float64, n)
	for i := 0; i < n; i++ {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := floats.Distance(rows[i], rows[j], 2)
			d[i][j], d[j][i] = v, v
		}
	}

	sums := make([]float64, k)
	var total float64
	for i := 0; i < n; i++ {
		own := labels[i]
		if sizes[own] <= 1 {
			continue // silhouette of a singleton is defined as 0
		}
		for c := 0; c < k; c++ {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if j != i {
				sums[labels[j]] += d[i][j]
			}
		}

		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || sizes[c] == 0 {
				continue
			}
			if v := sums[c] / float64(sizes[c]); v < b {
				b = v
			}
		}
		if mx := math.Max(a, b); mx > 0 {
			total += (b - a) / mx
		}
	}

	return total / float64(n)
}

// calinskiHarabasz is the variance-ratio criterion
// (between-group / within-group dispersion, degree-of-freedom corrected).
func calinskiHarabasz(rows [][]float64, labels []int, centroids [][]float64, sizes []int, grand []float64) float64 {
	n := len(rows)
	k := len(centroids)
	if k <= 1 || n <= k {
		return 0
	}

	var between float64
	for c := 0; c < k; c++ {
		var sq float64
		for j := range grand {
			d := centroids[c][j] - grand[j]
			sq += d * d
		}
		between += float64(sizes[c]) * sq
	}
	within := wcss(rows, labels, centroids)
	if within == 0 {
		return math.Inf(1)
	}

	return (between / float64(k-1)) / (within / float64(n-k))
}

// daviesBouldin is the mean over clusters of the worst-case similarity
// (si+sj)/dij, where si is the mean member-to-centroid distance.
func daviesBouldin(rows [][]float64, labels []int, centroids [][]float64, sizes []int) float64 {
	k := len(centroids)
	if k <= 1 {
		return 0
	}

	spread := make([]float64, k)
	for i, r := range rows {
		lbl := labels[i]
		spread[lbl] += floats.Distance(r, centroids[lbl], 2)
	}
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			spread[c] /= float64(sizes[c])
		}
	}

	var total float64
	for i := 0; i < k; i++ {
		worst := 0.0
		for j := 0; j < k; j++ {
			if j == i {
				continue
			}
			gap := floats.Distance(centroids[i], centroids[j], 2)
			if gap == 0 {
				continue // coincident centroids cannot happen for distinct merges
			}
			if r := (spread[i] + spread[j]) / gap; r > worst {
				worst = r
			}
		}
		total += worst
	}

	return total / float64(k)
}
