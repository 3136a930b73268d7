package distance

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// minHistogramBins keeps sparse samples from collapsing onto one bucket.
const minHistogramBins = 4

// sharedDensities bins both samples onto a common equal-width support
// spanning the union of their value ranges and normalizes each histogram
// into a probability vector. ok is false when the shared support is
// degenerate (all values across both samples are equal).
func sharedDensities(a, b []float64) (p, q []float64, ok bool) {
	lo := math.Min(floats.Min(a), floats.Min(b))
	hi := math.Max(floats.Max(a), floats.Max(b))
	if hi <= lo {
		return nil, nil, false
	}

	bins := int(math.Ceil(math.Sqrt(float64(len(a) + len(b)))))
	if bins < minHistogramBins {
		bins = minHistogramBins
	}

	p = binDensities(a, lo, hi, bins)
	q = binDensities(b, lo, hi, bins)
	return p, q, true
}

func binDensities(x []float64, lo, hi float64, bins int) []float64 {
	counts := make([]float64, bins)
	width := hi - lo
	for _, v := range x {
		idx := int(float64(bins) * (v - lo) / width)
		if idx == bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	floats.Scale(1/float64(len(x)), counts)
	return counts
}
