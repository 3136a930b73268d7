package experiment

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTest is a Welch two-sample t-test result.
type TTest struct {
	T float64
	P float64 // two-sided
}

// WelchTTest compares two accuracy samples without assuming equal
// variances. Degenerate inputs (fewer than two observations on either
// side, or zero variance in both) report no evidence (t=0, p=1).
func WelchTTest(a, b []float64) TTest {
	if len(a) < 2 || len(b) < 2 {
		return TTest{T: 0, P: 1}
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	na, nb := float64(len(a)), float64(len(b))

	se := varA/na + varB/nb
	if se == 0 {
		return TTest{T: 0, P: 1}
	}

	t := (meanA - meanB) / math.Sqrt(se)

	// Welch–Satterthwaite degrees of freedom.
	nu := se * se / (varA*varA/(na*na*(na-1)) + varB*varB/(nb*nb*(nb-1)))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	p := 2 * dist.CDF(-math.Abs(t))
	return TTest{T: t, P: p}
}
