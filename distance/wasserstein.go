package distance

import (
	"math"
	"slices"
	"sort"
)

// wasserstein computes the first Wasserstein distance between two 1-D
// empirical samples by integrating the absolute difference of their CDFs
// over the merged support.
func wasserstein(a, b []float64) float64 {
	as := slices.Clone(a)
	bs := slices.Clone(b)
	sort.Float64s(as)
	sort.Float64s(bs)

	merged := make([]float64, 0, len(as)+len(bs))
	merged = append(merged, as...)
	merged = append(merged, bs...)
	sort.Float64s(merged)

	var dist float64
	var ia, ib int
	for i := 0; i < len(merged)-1; i++ {
		v := merged[i]
		for ia < len(as) && as[ia] <= v {
			ia++
		}
		for ib < len(bs) && bs[ib] <= v {
			ib++
		}
		cdfA := float64(ia) / float64(len(as))
		cdfB := float64(ib) / float64(len(bs))
		dist += math.Abs(cdfA-cdfB) * (merged[i+1] - v)
	}
	return dist
}
