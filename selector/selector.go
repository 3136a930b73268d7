// Package selector implements the feature-selection strategies that
// operate on diffusion-map coordinates. Every strategy is deterministic
// for a given seed; ties are always broken by ascending feature index.
package selector

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/featmap/featmap/cluster"
	"github.com/featmap/featmap/embed"
)

// Strategy identifies one of the supported selection policies.
type Strategy int

const (
	// RankByAxis sorts the flattened coordinate values of all axes and
	// takes the first k distinct features encountered.
	RankByAxis Strategy = iota
	// FarthestFromOrigin takes the k features with the largest
	// coordinate norm.
	FarthestFromOrigin
	// KMeansRank clusters the points with k-means and emits one
	// representative per cluster, walking the first-axis ranking.
	KMeansRank
	// KMedoids clusters with exact medoids and returns the medoid
	// indices directly.
	KMedoids
)

var (
	// ErrUnknownStrategy is returned by ParseStrategy for unsupported
	// names.
	ErrUnknownStrategy = errors.New("selector: unknown strategy")
	// ErrInvalidCount is returned when the requested feature count is
	// degenerate (k < 1 or k >= N). Callers must skip such
	// combinations instead of invoking selection.
	ErrInvalidCount = errors.New("selector: invalid feature count")
)

// ParseStrategy resolves a strategy name from configuration.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "rank":
		return RankByAxis, nil
	case "farthest":
		return FarthestFromOrigin, nil
	case "kmeans":
		return KMeansRank, nil
	case "kmedoids":
		return KMedoids, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Names lists the canonical strategy names accepted by ParseStrategy.
func Names() []string {
	return []string{"rank", "farthest", "kmeans", "kmedoids"}
}

func (s Strategy) String() string {
	switch s {
	case RankByAxis:
		return "rank"
	case FarthestFromOrigin:
		return "farthest"
	case KMeansRank:
		return "kmeans"
	case KMedoids:
		return "kmedoids"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Select picks k feature indices from the embedding using the given
// strategy. The clustering strategies may legitimately return fewer
// than k indices when the coordinates hold fewer distinct clusters
// than requested; the caller observes this through the result length.
func Select(e *embed.Embedding, k int, strategy Strategy, seed int64) ([]int, error) {
	n := e.N()
	if k < 1 || k >= n {
		return nil, fmt.Errorf("%w: k=%d with %d features", ErrInvalidCount, k, n)
	}

	switch strategy {
	case RankByAxis:
		return rankByAxis(e, k), nil
	case FarthestFromOrigin:
		return farthestFromOrigin(e, k), nil
	case KMeansRank:
		return kmeansRank(e, k, seed)
	case KMedoids:
		return kmedoids(e, k, seed)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
}

// rankByAxis flattens the d×N coordinate matrix row-major into
// (value, feature) pairs, sorts ascending by value then feature index,
// and emits the first k distinct feature indices.
func rankByAxis(e *embed.Embedding, k int) []int {
	type entry struct {
		value   float64
		feature int
	}
	entries := make([]entry, 0, len(e.Coords)*e.N())
	for _, axis := range e.Coords {
		for i, v := range axis {
			entries = append(entries, entry{value: v, feature: i})
		}
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].value != entries[b].value {
			return entries[a].value < entries[b].value
		}
		return entries[a].feature < entries[b].feature
	})

	selected := make([]int, 0, k)
	seen := make(map[int]bool, k)
	for _, en := range entries {
		if seen[en.feature] {
			continue
		}
		seen[en.feature] = true
		selected = append(selected, en.feature)
		if len(selected) == k {
			break
		}
	}
	return selected
}

// farthestFromOrigin ranks features by the Euclidean norm of their
// coordinate vector, descending, and takes the top k.
func farthestFromOrigin(e *embed.Embedding, k int) []int {
	n := e.N()
	norms := make([]float64, n)
	for _, axis := range e.Coords {
		for i, v := range axis {
			norms[i] += v * v
		}
	}
	for i := range norms {
		norms[i] = math.Sqrt(norms[i])
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return norms[idx[a]] > norms[idx[b]]
	})
	return idx[:k]
}

// kmeansRank clusters the coordinate points into k groups and walks the
// first-axis ranking, emitting each newly encountered cluster's feature
// as that cluster's representative. At most one feature per cluster is
// selected; the walk stops once k clusters are represented or the
// ranking is exhausted.
func kmeansRank(e *embed.Embedding, k int, seed int64) ([]int, error) {
	assign, _, err := cluster.KMeans(e.Points(), k, seed)
	if err != nil {
		return nil, err
	}

	selected := make([]int, 0, k)
	seen := make(map[int]bool, k)
	for _, feature := range e.Rankings[0] {
		c := assign[feature]
		if seen[c] {
			continue
		}
		seen[c] = true
		selected = append(selected, feature)
		if len(selected) == k {
			break
		}
	}
	return selected, nil
}

// kmedoids clusters the coordinate points around exact medoids and
// returns the medoid row indices directly, ascending. Each returned
// index is an actual data point, so no coordinate matching is needed.
func kmedoids(e *embed.Embedding, k int, seed int64) ([]int, error) {
	medoids, _, err := cluster.KMedoids(e.Points(), k, seed)
	if err != nil {
		return nil, err
	}
	sort.Ints(medoids)
	return medoids, nil
}
