// Package hcluster provides agglomerative (hierarchical) clustering over the
// rows of a dense matrix, the four classical cluster-validity scores, and a
// majority-vote rule for choosing the cluster count.
//
// 🚀 What is agglomerative clustering?
//
//	Every row starts as its own cluster; the closest pair of clusters is
//	merged repeatedly until k clusters remain. There is no centroid
//	reassignment: once merged, always merged. Inter-cluster distances are
//	maintained with Lance-Williams updates, so each linkage (Ward, complete,
//	average) shares one deterministic merge loop.
//
// ✨ Key features:
//   - Ward linkage over squared Euclidean distance by default, the setting
//     used for spectral time series in practice
//   - optional k-nearest-neighbor connectivity constraint: merges are
//     restricted to clusters adjacent in the neighborhood graph
//   - optional per-column standardization (zero mean, unit variance)
//   - pluggable DistanceFunc, including a DTW distance for curve-shaped rows
//   - Sweep computes WCSS, silhouette, Calinski-Harabasz and Davies-Bouldin
//     for every candidate k in one agglomeration pass
//   - ChooseK picks k by majority among the WCSS elbow, the silhouette
//     maximum and the Davies-Bouldin minimum; a three-way disagreement is
//     surfaced as ErrAmbiguousSelection, never resolved silently
//
// ⚙️ Usage:
//
//	scores, labelings, err := hcluster.Sweep(X, 2, 9,
//	    hcluster.WithStandardize(),
//	    hcluster.WithConnectivity(10),
//	)
//	if err != nil { ... }
//	k, err := hcluster.ChooseK(scores)
//
// Performance: O(n³ + n²·m) time, O(n²) memory for n rows of m features;
// intended for modest n (tens to hundreds of samples).
package hcluster
