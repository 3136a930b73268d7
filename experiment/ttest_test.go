package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelchTTestNoDifference(t *testing.T) {
	a := []float64{0.8, 0.82, 0.79, 0.81}

	tt := WelchTTest(a, a)
	assert.InDelta(t, 0, tt.T, 1e-12)
	assert.InDelta(t, 1, tt.P, 1e-9)
}

func TestWelchTTestClearDifference(t *testing.T) {
	a := []float64{0.91, 0.92, 0.90, 0.93, 0.91}
	b := []float64{0.51, 0.49, 0.52, 0.50, 0.48}

	tt := WelchTTest(a, b)
	assert.Greater(t, tt.T, 10.0)
	assert.Less(t, tt.P, 0.01)
}

func TestWelchTTestDegenerateInputs(t *testing.T) {
	tt := WelchTTest([]float64{0.5}, []float64{0.4, 0.6})
	assert.Equal(t, TTest{T: 0, P: 1}, tt)

	tt = WelchTTest([]float64{0.5, 0.5}, []float64{0.5, 0.5})
	assert.Equal(t, TTest{T: 0, P: 1}, tt)
}
