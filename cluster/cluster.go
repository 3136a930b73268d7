// Package cluster provides small deterministic clustering primitives
// for embedding coordinates: seeded Lloyd k-means and exact-medoid
// k-medoids. Both degrade to a best-effort partial result when the
// data holds fewer distinct points than the requested cluster count.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// DistanceFunc measures the distance between two n-dimensional vectors.
type DistanceFunc func(a, b []float64) float64

// SquaredEuclidean is the default distance for both algorithms.
func SquaredEuclidean(a, b []float64) float64 {
	var s float64
	for i := range a {
		t := a[i] - b[i]
		s += t * t
	}
	return s
}

// ErrNoPoints is returned when there is nothing to cluster.
var ErrNoPoints = errors.New("cluster: no points")

const maxIterations = 100

// effectiveK caps k at the number of distinct points so clustering
// returns a partial result instead of failing on duplicate-heavy data.
func effectiveK(points [][]float64, k int) int {
	distinct := 0
	for i := range points {
		dup := false
		for j := 0; j < i; j++ {
			if SquaredEuclidean(points[i], points[j]) == 0 {
				dup = true
				break
			}
		}
		if !dup {
			distinct++
		}
	}
	if k > distinct {
		return distinct
	}
	return k
}

// seedIndices picks k starting point indices with pairwise-distinct
// coordinates, chosen by a seeded permutation for reproducibility.
func seedIndices(points [][]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(points))

	chosen := make([]int, 0, k)
	for _, idx := range perm {
		dup := false
		for _, c := range chosen {
			if SquaredEuclidean(points[idx], points[c]) == 0 {
				dup = true
				break
			}
		}
		if !dup {
			chosen = append(chosen, idx)
			if len(chosen) == k {
				break
			}
		}
	}
	return chosen
}

// nearest returns the index of the closest center, ties resolved by the
// lower center index.
func nearest(p []float64, centers [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, center := range centers {
		if d := SquaredEuclidean(p, center); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// KMeans clusters points into at most k groups with Lloyd iterations.
// Initialization and every tie-break are deterministic for a given
// seed. It returns the per-point cluster assignment and the final
// centroids; the centroid count may be below k when the data holds
// fewer distinct points.
func KMeans(points [][]float64, k int, seed int64) (assign []int, centroids [][]float64, err error) {
	if len(points) == 0 {
		return nil, nil, ErrNoPoints
	}
	if k < 1 {
		return nil, nil, fmt.Errorf("cluster: k=%d must be at least 1", k)
	}
	k = effectiveK(points, k)

	dim := len(points[0])
	centroids = make([][]float64, k)
	for c, idx := range seedIndices(points, k, seed) {
		centroids[c] = append([]float64(nil), points[idx]...)
	}

	assign = make([]int, len(points))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			if c := nearest(p, centroids); c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			c := assign[i]
			counts[c]++
			for d := range p {
				sums[c][d] += p[d]
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Empty cluster keeps its previous centroid.
				continue
			}
			for d := 0; d < dim; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}
	return assign, centroids, nil
}

// KMedoids clusters points into at most k groups around exact medoids:
// every returned medoid is the index of an actual input point, never a
// synthesized centroid. Assignment and medoid updates alternate until
// the medoid set is stable.
func KMedoids(points [][]float64, k int, seed int64) (medoids []int, assign []int, err error) {
	if len(points) == 0 {
		return nil, nil, ErrNoPoints
	}
	if k < 1 {
		return nil, nil, fmt.Errorf("cluster: k=%d must be at least 1", k)
	}
	k = effectiveK(points, k)

	medoids = seedIndices(points, k, seed)
	assign = make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, m := range medoids {
				if d := SquaredEuclidean(p, points[m]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			assign[i] = best
		}

		changed := false
		for c := range medoids {
			best := medoids[c]
			bestCost := math.Inf(1)
			for i := range points {
				if assign[i] != c {
					continue
				}
				var cost float64
				for j := range points {
					if assign[j] == c {
						cost += SquaredEuclidean(points[i], points[j])
					}
				}
				// Ascending scan: the lowest index wins cost ties.
				if cost < bestCost {
					bestCost = cost
					best = i
				}
			}
			if best != medoids[c] {
				medoids[c] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return medoids, assign, nil
}
