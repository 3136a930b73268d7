package experiment

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/featmap/featmap/table"
)

// RandomSelect draws k distinct feature indices with a seeded RNG. It
// is the reference baseline every strategy is compared against.
func RandomSelect(n, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	selected := append([]int(nil), perm[:k]...)
	sort.Ints(selected)
	return selected
}

// FisherSelect ranks features by Fisher score (between-class variance
// of class means over pooled within-class variance) and takes the top
// k, ties broken by feature index. Zero within-class variance scores 0
// so constant features never dominate the ranking.
func FisherSelect(features []table.Feature, labels []string, k int) []int {
	classes := table.Classes(labels)

	scores := make([]float64, len(features))
	for fi, f := range features {
		scores[fi] = fisherScore(f.Values, labels, classes)
	}

	idx := make([]int, len(features))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if k > len(idx) {
		k = len(idx)
	}
	selected := append([]int(nil), idx[:k]...)
	sort.Ints(selected)
	return selected
}

func fisherScore(values []float64, labels []string, classes []string) float64 {
	overall := stat.Mean(values, nil)

	var between, within float64
	for _, class := range classes {
		var sub []float64
		for i, l := range labels {
			if l == class {
				sub = append(sub, values[i])
			}
		}
		if len(sub) == 0 {
			continue
		}
		mean := stat.Mean(sub, nil)
		nc := float64(len(sub))
		between += nc * (mean - overall) * (mean - overall)
		if len(sub) > 1 {
			within += nc * stat.Variance(sub, nil)
		}
	}
	if within == 0 {
		return 0
	}
	return between / within
}
