package hcluster

import "errors"

// Linkage selects the Lance-Williams rule used to update inter-cluster
// distances after a merge.
//
//   - Ward     — minimizes the within-cluster variance increase; operates on
//     squared Euclidean distances. The default, and the setting used by the
//     reference crystallization analysis.
//   - Complete — distance between clusters is the maximum pairwise distance.
//   - Average  — distance between clusters is the size-weighted mean pairwise
//     distance (UPGMA).
type Linkage int

const (
	// Ward linkage: merge the pair with the smallest variance increase.
	Ward Linkage = iota

	// Complete linkage: merge by smallest maximum pairwise distance.
	Complete

	// Average linkage: merge by smallest mean pairwise distance.
	Average
)

// DistanceFunc measures dissimilarity between two equal-length rows.
// It must be symmetric and zero on identical inputs.
type DistanceFunc func(a, b []float64) float64

// Score is the validity-score set for one candidate cluster count.
// All four values are computed on the same (optionally standardized) data
// and the same labeling, so rows of a sweep table are directly comparable.
type Score struct {
	// K is the candidate cluster count.
	K int

	// WCSS is the within-cluster sum of squares: lower is tighter; its
	// elbow marks the point of diminishing returns.
	WCSS float64

	// Silhouette is the mean silhouette coefficient in [-1, 1]: higher is
	// better separated.
	Silhouette float64

	// CalinskiHarabasz is the variance-ratio criterion: higher is better.
	// Reported for inspection; never decisive in ChooseK.
	CalinskiHarabasz float64

	// DaviesBouldin is the mean worst-case cluster similarity: lower is
	// better.
	DaviesBouldin float64
}

// Defaults for option resolution; single source of truth.
const (
	// DefaultLinkage is Ward.
	DefaultLinkage = Ward

	// DefaultConnectivity disables the neighborhood constraint.
	DefaultConnectivity = 0
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("hcluster: matrix must be non-nil")

	// ErrBadK indicates a cluster count outside [1, rows].
	ErrBadK = errors.New("hcluster: k must be in [1, rows]")

	// ErrBadRange indicates an invalid sweep range; validity scores need
	// kMin ≥ 2 and kMax < rows.
	ErrBadRange = errors.New("hcluster: sweep range must satisfy 2 ≤ kMin ≤ kMax < rows")

	// ErrAmbiguousSelection indicates a three-way disagreement between the
	// WCSS elbow, the silhouette maximum, and the Davies-Bouldin minimum.
	// The full score table accompanies it; resolution is an analyst
	// decision, not an automated tie-break.
	ErrAmbiguousSelection = errors.New("hcluster: validity scores disagree; selection requires analyst judgment")
)

// Option adjusts clustering behavior.
type Option func(*options)

type options struct {
	linkage      Linkage
	distance     DistanceFunc // nil means linkage-appropriate Euclidean
	connectivity int          // 0 disables the constraint
	standardize  bool
}

func gatherOptions(opts ...Option) options {
	o := options{
		linkage:      DefaultLinkage,
		connectivity: DefaultConnectivity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLinkage selects the merge criterion. Panics on an unknown value
// (programmer error).
func WithLinkage(l Linkage) Option {
	if l != Ward && l != Complete && l != Average {
		panic("hcluster: WithLinkage: unknown linkage")
	}

	return func(o *options) { o.linkage = l }
}

// WithDistance overrides the pairwise distance. Ward linkage expects a
// squared metric; with an arbitrary DistanceFunc the merge order remains
// deterministic but the variance interpretation no longer holds.
func WithDistance(d DistanceFunc) Option {
	if d == nil {
		panic("hcluster: WithDistance: distance must be non-nil")
	}

	return func(o *options) { o.distance = d }
}

// WithConnectivity restricts merges to clusters adjacent in the symmetrized
// k-nearest-neighbor graph built from the (optionally standardized) rows.
// neighbors must be ≥ 1; if at some step no adjacent pair remains, the
// constraint is relaxed for that step so the requested cluster count is
// always reachable.
func WithConnectivity(neighbors int) Option {
	if neighbors < 1 {
		panic("hcluster: WithConnectivity: neighbors must be ≥ 1")
	}

	return func(o *options) { o.connectivity = neighbors }
}

// WithStandardize scales every column to zero mean and unit variance before
// distances are computed. Validity scores are computed on the same scaled
// data. Constant columns are left centered at zero.
func WithStandardize() Option {
	return func(o *options) { o.standardize = true }
}
