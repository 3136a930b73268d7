package distance

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// maxBhattacharyya caps the distance when the two histograms share no
// support at all, where -ln(0) would otherwise be +Inf. Class-pair
// matrices must stay finite for the kernel construction downstream.
const maxBhattacharyya = 700

func bhattacharyya(a, b []float64) float64 {
	p, q, ok := sharedDensities(a, b)
	if !ok {
		return 0
	}
	d := stat.Bhattacharyya(p, q)
	if math.IsNaN(d) {
		return 0
	}
	if d > maxBhattacharyya {
		return maxBhattacharyya
	}
	return d
}

func hellinger(a, b []float64) float64 {
	p, q, ok := sharedDensities(a, b)
	if !ok {
		return 0
	}
	d := stat.Hellinger(p, q)
	if math.IsNaN(d) {
		return 0
	}
	return d
}

// jeffriesMatusita is sqrt(2*(1-exp(-B))) where B is the Bhattacharyya
// distance, bounded above by sqrt(2).
func jeffriesMatusita(a, b []float64) float64 {
	return math.Sqrt(2 * (1 - math.Exp(-bhattacharyya(a, b))))
}
