// Package embed computes diffusion-map embeddings of feature distance
// tables (Coifman–Lafon construction). Each row of the input table is
// one feature; the embedding assigns every feature a low-dimensional
// coordinate such that Euclidean distance in embedding space
// approximates diffusion distance on the similarity graph built from
// the rows.
package embed

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// EpsStrategy selects how the Gaussian kernel bandwidth is determined.
type EpsStrategy int

const (
	// EpsMaxMin adapts the bandwidth to the data: factor times the
	// maximum over rows of the minimum nonzero distance in that row.
	EpsMaxMin EpsStrategy = iota
	// EpsFixed uses the configured factor directly as the bandwidth.
	EpsFixed
)

// ParseEpsStrategy resolves a bandwidth strategy name from configuration.
func ParseEpsStrategy(name string) (EpsStrategy, error) {
	switch name {
	case "maxmin":
		return EpsMaxMin, nil
	case "fixed":
		return EpsFixed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEps, name)
}

func (s EpsStrategy) String() string {
	switch s {
	case EpsMaxMin:
		return "maxmin"
	case EpsFixed:
		return "fixed"
	}
	return fmt.Sprintf("EpsStrategy(%d)", int(s))
}

// fallbackEps keeps the kernel defined when every pairwise row distance
// is zero (all features identical under the metric).
const fallbackEps = 1e-12

var (
	// ErrUnknownEps is returned for unsupported bandwidth strategy names.
	ErrUnknownEps = errors.New("embed: unknown epsilon strategy")
	// ErrBadConfig is returned for out-of-range embedding parameters.
	ErrBadConfig = errors.New("embed: invalid configuration")
)

// Config holds the diffusion-map parameters.
type Config struct {
	// Alpha is the anisotropic normalization exponent in [0, 1].
	// 1 approximates the Laplace–Beltrami operator, 0 leaves the raw
	// graph-Laplacian kernel.
	Alpha float64

	// Eps selects the bandwidth strategy.
	Eps EpsStrategy

	// EpsFactor scales the maxmin bandwidth, or is the bandwidth
	// itself under EpsFixed. Must be positive.
	EpsFactor float64

	// Dim is the number of embedding axes to retain.
	Dim int
}

// DefaultConfig mirrors the usual experiment settings: 2-D embedding,
// full anisotropic normalization, adaptive bandwidth.
func DefaultConfig() Config {
	return Config{Alpha: 1, Eps: EpsMaxMin, EpsFactor: 100, Dim: 2}
}

// Embedding is the result of a diffusion map over N features.
type Embedding struct {
	// Coords is Dim×N: Coords[k][i] is feature i's coordinate on axis
	// k, already scaled by the axis eigenvalue. Column order matches
	// the row order of the input table.
	Coords [][]float64

	// Rankings is Dim×N: Rankings[k] lists feature indices ordered by
	// ascending coordinate on axis k, ties broken by index.
	Rankings [][]int

	// Eigenvalues holds the retained (non-trivial) eigenvalues, one
	// per axis, clamped to be non-negative.
	Eigenvalues []float64
}

// N returns the number of embedded features.
func (e *Embedding) N() int {
	if len(e.Coords) == 0 {
		return 0
	}
	return len(e.Coords[0])
}

// Points returns the embedding as N rows of Dim-dimensional points,
// the layout clustering-based selectors operate on.
func (e *Embedding) Points() [][]float64 {
	n := e.N()
	pts := make([][]float64, n)
	for i := 0; i < n; i++ {
		p := make([]float64, len(e.Coords))
		for k := range e.Coords {
			p[k] = e.Coords[k][i]
		}
		pts[i] = p
	}
	return pts
}

// Map embeds the rows of flat into cfg.Dim dimensions. It is
// deterministic: identical inputs produce identical embeddings.
// Numerical degeneracies (all-equal rows, singular kernels) degrade to
// a zero embedding rather than failing; only configuration errors are
// returned.
func Map(flat [][]float64, cfg Config) (*Embedding, error) {
	n := len(flat)
	if err := validate(n, cfg); err != nil {
		return nil, err
	}

	dist := rowDistances(flat)
	eps := bandwidth(dist, cfg)

	// Unnormalized Gaussian kernel.
	k := make([][]float64, n)
	for i := range k {
		k[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d := dist[i][j]
			k[i][j] = math.Exp(-d * d / eps)
		}
	}

	// Anisotropic alpha normalization: K / (q_i^a * q_j^a).
	q := make([]float64, n)
	for i := range k {
		for j := 0; j < n; j++ {
			q[i] += k[i][j]
		}
	}
	for i := range k {
		for j := 0; j < n; j++ {
			denom := math.Pow(q[i], cfg.Alpha) * math.Pow(q[j], cfg.Alpha)
			if denom > 0 {
				k[i][j] /= denom
			}
		}
	}

	// Row sums of the normalized kernel define the Markov transition
	// matrix P = D^-1 K. Eigendecompose the symmetric conjugate
	// S = D^1/2 P D^-1/2 = K_ij / sqrt(d_i d_j) instead, which shares
	// P's eigenvalues and maps eigenvectors via phi = D^-1/2 v.
	d := make([]float64, n)
	for i := range k {
		for j := 0; j < n; j++ {
			d[i] += k[i][j]
		}
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			denom := math.Sqrt(d[i] * d[j])
			if denom > 0 {
				sym.SetSym(i, j, k[i][j]/denom)
			}
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		// Singular kernel: degrade to a zero embedding so a long
		// experiment sweep is never aborted by one bad combination.
		return zeroEmbedding(n, cfg.Dim), nil
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Order eigenpairs by descending eigenvalue. The top pair is the
	// trivial stationary eigenvector (lambda ~ 1) and is discarded.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	e := &Embedding{
		Coords:      make([][]float64, cfg.Dim),
		Eigenvalues: make([]float64, cfg.Dim),
	}
	for axis := 0; axis < cfg.Dim; axis++ {
		col := order[axis+1]
		lambda := values[col]
		if lambda < 0 {
			// Roundoff on a symmetric-similar matrix; clamp.
			lambda = 0
		}
		e.Eigenvalues[axis] = lambda

		coords := make([]float64, n)
		for i := 0; i < n; i++ {
			phi := vectors.At(i, col)
			if d[i] > 0 {
				phi /= math.Sqrt(d[i])
			}
			coords[i] = lambda * phi
		}
		e.Coords[axis] = coords
	}
	e.Rankings = axisRankings(e.Coords)
	return e, nil
}

func validate(n int, cfg Config) error {
	switch {
	case n == 0:
		return fmt.Errorf("%w: empty distance table", ErrBadConfig)
	case cfg.Dim < 1:
		return fmt.Errorf("%w: dim %d < 1", ErrBadConfig, cfg.Dim)
	case cfg.Dim >= n:
		return fmt.Errorf("%w: dim %d requires more than %d features", ErrBadConfig, cfg.Dim, n)
	case cfg.Alpha < 0 || cfg.Alpha > 1:
		return fmt.Errorf("%w: alpha %v outside [0,1]", ErrBadConfig, cfg.Alpha)
	case cfg.EpsFactor <= 0:
		return fmt.Errorf("%w: eps factor %v must be positive", ErrBadConfig, cfg.EpsFactor)
	}
	return nil
}

// rowDistances computes the Euclidean distance between every pair of
// rows of the flattened distance table.
func rowDistances(flat [][]float64) [][]float64 {
	n := len(flat)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for c := range flat[i] {
				diff := flat[i][c] - flat[j][c]
				sum += diff * diff
			}
			d := math.Sqrt(sum)
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// bandwidth resolves the kernel bandwidth for the given strategy,
// guarding against an all-zero distance matrix.
func bandwidth(dist [][]float64, cfg Config) float64 {
	if cfg.Eps == EpsFixed {
		return cfg.EpsFactor
	}

	var maxMin float64
	for i := range dist {
		rowMin := math.Inf(1)
		for j, d := range dist[i] {
			if j != i && d > 0 && d < rowMin {
				rowMin = d
			}
		}
		if !math.IsInf(rowMin, 1) && rowMin > maxMin {
			maxMin = rowMin
		}
	}
	if maxMin == 0 {
		return fallbackEps
	}
	return cfg.EpsFactor * maxMin
}

// axisRankings returns, per axis, the feature indices ordered by
// ascending coordinate value, ties broken by index ascending.
func axisRankings(coords [][]float64) [][]int {
	rankings := make([][]int, len(coords))
	for axis, vals := range coords {
		idx := make([]int, len(vals))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return vals[idx[a]] < vals[idx[b]]
		})
		rankings[axis] = idx
	}
	return rankings
}

func zeroEmbedding(n, dim int) *Embedding {
	e := &Embedding{
		Coords:      make([][]float64, dim),
		Eigenvalues: make([]float64, dim),
	}
	for k := range e.Coords {
		e.Coords[k] = make([]float64, n)
	}
	e.Rankings = axisRankings(e.Coords)
	return e
}
