package hcluster

import (
	"fmt"
	"math"
)

// ChooseK picks the cluster count from a sweep table by majority vote among
// three independent signals:
//
//   - the elbow of the WCSS curve (largest second forward difference, the
//     discrete-curvature knee heuristic),
//   - the silhouette maximum,
//   - the Davies-Bouldin minimum.
//
// Calinski-Harabasz is present in the table for inspection but is never
// decisive; it frequently disagrees on spectral data and the reference
// analysis treats it the same way.
//
// If at least two signals agree, that k is returned. A three-way
// disagreement returns ErrAmbiguousSelection with k=0: the decision belongs
// to the analyst, who has the full table (this is a documented manual
// checkpoint, not a failure of the data).
//
// The table must be ordered by ascending K, as produced by Sweep; at least
// three rows are needed for the elbow to be defined.
func ChooseK(scores []Score) (int, error) {
	if len(scores) < 3 {
		return 0, fmt.Errorf("hcluster: ChooseK: need at least 3 swept counts, got %d", len(scores))
	}

	elbow := elbowK(scores)
	sil := argbestK(scores, func(s Score) float64 { return s.Silhouette }, true)
	db := argbestK(scores, func(s Score) float64 { return s.DaviesBouldin }, false)

	switch {
	case elbow == sil || elbow == db:
		return elbow, nil
	case sil == db:
		return sil, nil
	default:
		return 0, fmt.Errorf("%w: elbow=%d, silhouette=%d, davies-bouldin=%d",
			ErrAmbiguousSelection, elbow, sil, db)
	}
}

// elbowK locates the knee of the WCSS curve: the interior point with the
// largest second forward difference. Endpoints cannot host an elbow.
func elbowK(scores []Score) int {
	best := math.Inf(-1)
	bestK := scores[1].K
	for i := 1; i < len(scores)-1; i++ {
		curv := scores[i-1].WCSS - 2*scores[i].WCSS + scores[i+1].WCSS
		if curv > best {
			best = curv
			bestK = scores[i].K
		}
	}

	return bestK
}

// argbestK returns the K of the row maximizing (or minimizing) the given
// score field. Ties resolve to the smallest K.
func argbestK(scores []Score, field func(Score) float64, maximize bool) int {
	bestK := scores[0].K
	bestV := field(scores[0])
	for _, s := range scores[1:] {
		v := field(s)
		if (maximize && v > bestV) || (!maximize && v < bestV) {
			bestV = v
			bestK = s.K
		}
	}

	return bestK
}
