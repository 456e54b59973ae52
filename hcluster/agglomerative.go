package hcluster

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Agglomerate clusters the rows of X into k groups bottom-up.
//
// Implementation:
//   - Stage 1: validate; resolve options; optionally standardize columns.
//   - Stage 2: initialize one cluster per row with pairwise distances
//     (squared Euclidean for Ward, Euclidean otherwise, unless overridden).
//   - Stage 3: repeatedly merge the closest admissible pair, updating
//     distances with the Lance-Williams rule for the chosen linkage, until k
//     clusters remain.
//
// Inputs:
//   - X: non-nil dense matrix (n rows of m features), not mutated.
//   - k: target cluster count in [1, n].
//
// Returns:
//   - []int of length n: label per row, labels 0..k-1 in order of first
//     appearance (row 0 always gets label 0). Labels carry no inherent order.
//
// Errors:
//   - ErrNilMatrix, ErrBadK.
//
// Determinism:
//   - Fixed pair scan order (i asc, j asc) breaks distance ties, so the
//     merge sequence and labeling are stable across runs.
//
// Complexity:
//   - Time O(n²·m + n³), Space O(n²).
func Agglomerate(X *mat.Dense, k int, opts ...Option) ([]int, error) {
	if X == nil {
		return nil, ErrNilMatrix
	}
	n, _ := X.Dims()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d, rows=%d", ErrBadK, k, n)
	}

	eng := newEngine(X, gatherOptions(opts...))
	for eng.clusters > k {
		eng.step()
	}

	return eng.labels(), nil
}

// Sweep runs a single agglomeration from n singleton clusters down to kMin,
// snapshotting the labeling at every candidate count in [kMin, kMax] and
// scoring each snapshot with all four validity scores.
//
// Returns the score table and the matching labelings, both ordered by
// ascending k (scores[i].K == kMin+i). The table is always complete for the
// swept range; selection is a separate step (ChooseK) so that disagreement
// can be surfaced to the analyst together with the full table.
//
// Errors: ErrNilMatrix, ErrBadRange. Silhouette and Davies-Bouldin are
// undefined for k < 2 and k = n, hence the range contract.
func Sweep(X *mat.Dense, kMin, kMax int, opts ...Option) ([]Score, [][]int, error) {
	if X == nil {
		return nil, nil, ErrNilMatrix
	}
	n, _ := X.Dims()
	if kMin < 2 || kMax < kMin || kMax >= n {
		return nil, nil, fmt.Errorf("%w: kMin=%d, kMax=%d, rows=%d", ErrBadRange, kMin, kMax, n)
	}

	eng := newEngine(X, gatherOptions(opts...))
	count := kMax - kMin + 1
	scores := make([]Score, count)
	labelings := make([][]int, count)

	for eng.clusters > kMin {
		eng.step()
		if k := eng.clusters; k >= kMin && k <= kMax {
			lbl := eng.labels()
			idx := k - kMin
			labelings[idx] = lbl
			scores[idx] = scoreLabeling(eng.rows, lbl, k)
		}
	}

	return scores, labelings, nil
}

// Standardize returns a copy of X with every column scaled to zero mean and
// unit variance. Columns with zero variance are centered only.
func Standardize(X *mat.Dense) *mat.Dense {
	n, m := X.Dims()
	out := mat.NewDense(n, m, nil)
	col := make([]float64, n)
	for j := 0; j < m; j++ {
		mat.Col(col, j, X)
		mean, std := stat.MeanStdDev(col, nil)
		for i := 0; i < n; i++ {
			v := col[i] - mean
			if std > 0 {
				v /= std
			}
			out.Set(i, j, v)
		}
	}

	return out
}

// engine carries the state of one agglomeration run. All merge decisions are
// deterministic: the pair scan order is fixed and ties resolve to the
// earliest (i, j).
type engine struct {
	rows     [][]float64
	dist     [][]float64 // symmetric inter-cluster distances; valid for active ids
	size     []int
	active   []bool
	members  [][]int
	adj      [][]bool // cluster adjacency under the connectivity constraint; nil = unconstrained
	linkage  Linkage
	clusters int
}

func newEngine(X *mat.Dense, o options) *engine {
	work := X
	if o.standardize {
		work = Standardize(X)
	}
	n, _ := work.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, work)
	}

	d := o.distance
	if d == nil {
		if o.linkage == Ward {
			d = SquaredEuclidean
		} else {
			d = Euclidean
		}
	}

	e := &engine{
		rows:     rows,
		dist:     make([][]float64, n),
		size:     make([]int, n),
		active:   make([]bool, n),
		members:  make([][]int, n),
		linkage:  o.linkage,
		clusters: n,
	}
	for i := 0; i < n; i++ {
		e.dist[i] = make([]float64, n)
		e.size[i] = 1
		e.active[i] = true
		e.members[i] = []int{i}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := d(rows[i], rows[j])
			e.dist[i][j], e.dist[j][i] = v, v
		}
	}

	if o.connectivity > 0 {
		e.adj = knnAdjacency(e.dist, o.connectivity)
	}

	return e
}

// step merges the closest admissible pair of active clusters. When the
// connectivity graph leaves no adjacent pair, the constraint is relaxed for
// this step so progress is always possible.
func (e *engine) step() {
	a, b := e.closestPair(true)
	if a < 0 {
		a, b = e.closestPair(false)
	}
	e.merge(a, b)
}

// closestPair scans active pairs in fixed (i asc, j asc) order and returns
// the indices with minimal distance, or (-1, -1) if constrained and no
// adjacent pair exists.
func (e *engine) closestPair(constrained bool) (int, int) {
	n := len(e.rows)
	best := math.Inf(1)
	bi, bj := -1, -1
	for i := 0; i < n; i++ {
		if !e.active[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !e.active[j] {
				continue
			}
			if constrained && e.adj != nil && !e.adj[i][j] {
				continue
			}
			if v := e.dist[i][j]; v < best {
				best, bi, bj = v, i, j
			}
		}
	}

	return bi, bj
}

// merge folds cluster b into cluster a and refreshes distances via the
// Lance-Williams rule of the configured linkage.
func (e *engine) merge(a, b int) {
	na, nb := float64(e.size[a]), float64(e.size[b])
	dab := e.dist[a][b]

	for k := range e.rows {
		if !e.active[k] || k == a || k == b {
			continue
		}
		nk := float64(e.size[k])
		dak, dbk := e.dist[a][k], e.dist[b][k]

		var v float64
		switch e.linkage {
		case Ward:
			v = ((na+nk)*dak + (nb+nk)*dbk - nk*dab) / (na + nb + nk)
		case Complete:
			v = math.Max(dak, dbk)
		case Average:
			v = (na*dak + nb*dbk) / (na + nb)
		}
		e.dist[a][k], e.dist[k][a] = v, v
	}

	e.size[a] += e.size[b]
	e.members[a] = append(e.members[a], e.members[b]...)
	e.active[b] = false
	e.clusters--

	if e.adj != nil {
		for k := range e.adj[a] {
			e.adj[a][k] = e.adj[a][k] || e.adj[b][k]
			e.adj[k][a] = e.adj[a][k]
		}
		e.adj[a][a] = false
	}
}

// labels materializes the current partition, relabeled 0..clusters-1 in
// order of first appearance by row index.
func (e *engine) labels() []int {
	n := len(e.rows)
	raw := make([]int, n)
	for id := 0; id < n; id++ {
		if !e.active[id] {
			continue
		}
		for _, r := range e.members[id] {
			raw[r] = id
		}
	}

	remap := make(map[int]int, e.clusters)
	out := make([]int, n)
	next := 0
	for i, id := range raw {
		lbl, ok := remap[id]
		if !ok {
			lbl = next
			remap[id] = lbl
			next++
		}
		out[i] = lbl
	}

	return out
}

// knnAdjacency builds a symmetrized k-nearest-neighbor graph from the
// initial pairwise distances: i and j are adjacent when either is among the
// other's k closest rows.
func knnAdjacency(dist [][]float64, k int) [][]bool {
	n := len(dist)
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	idx := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		idx = idx[:0]
		for j := 0; j < n; j++ {
			if j != i {
				idx = append(idx, j)
			}
		}
		d := dist[i]
		sort.SliceStable(idx, func(p, q int) bool { return d[idx[p]] < d[idx[q]] })
		top := k
		if top > len(idx) {
			top = len(idx)
		}
		for _, j := range idx[:top] {
			adj[i][j] = true
			adj[j][i] = true
		}
	}

	return adj
}
