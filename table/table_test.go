package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featmap/featmap/distance"
)

func testFeatures() ([]Feature, []string) {
	features := []Feature{
		{Name: "f0", Values: []float64{0.1, 0.2, 5.1, 5.3, 0.15, 5.2}},
		{Name: "f1", Values: []float64{1.0, 1.1, 1.05, 0.95, 1.02, 1.08}},
		{Name: "f2", Values: []float64{3.0, 9.0, 3.1, 9.2, 2.9, 9.1}},
		{Name: "f3", Values: []float64{0.5, 0.6, 0.55, 0.52, 0.58, 0.61}},
	}
	labels := []string{"a", "a", "b", "b", "a", "b"}
	return features, labels
}

func TestClassesFirstSeenOrder(t *testing.T) {
	classes := Classes([]string{"z", "a", "z", "m", "a"})
	assert.Equal(t, []string{"z", "a", "m"}, classes)
}

func TestBuildShape(t *testing.T) {
	features, labels := testFeatures()

	tbl, err := Build(features, labels, distance.Wasserstein)
	require.NoError(t, err)

	// N=4 features, C=2 classes: flattened table is 4×4.
	require.Len(t, tbl.Flat, 4)
	for _, row := range tbl.Flat {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, []string{"a", "b"}, tbl.Classes)
	assert.Len(t, tbl.ByFeature, 4)
}

func TestClassMatrixSymmetricZeroDiagonal(t *testing.T) {
	features, labels := testFeatures()
	classes := Classes(labels)

	for _, metric := range []distance.Metric{
		distance.Wasserstein, distance.Bhattacharyya,
		distance.Hellinger, distance.JeffriesMatusita,
	} {
		for _, f := range features {
			m := ClassMatrix(f.Values, labels, classes, metric)
			c := m.SymmetricDim()
			require.Equal(t, len(classes), c)
			for i := 0; i < c; i++ {
				assert.Zero(t, m.At(i, i), "diagonal must be exactly 0")
				for j := 0; j < c; j++ {
					assert.InDelta(t, m.At(j, i), m.At(i, j), 1e-12)
					assert.GreaterOrEqual(t, m.At(i, j), 0.0)
				}
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	features, labels := testFeatures()

	t1, err := Build(features, labels, distance.JeffriesMatusita)
	require.NoError(t, err)
	t2, err := Build(features, labels, distance.JeffriesMatusita)
	require.NoError(t, err)

	assert.Equal(t, t1.Flat, t2.Flat)
}

func TestBuildShapeMismatch(t *testing.T) {
	features := []Feature{{Name: "short", Values: []float64{1, 2}}}
	labels := []string{"a", "b", "a"}

	_, err := Build(features, labels, distance.Wasserstein)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestClassMatrixMissingClass(t *testing.T) {
	// A class with no rows must contribute zero distances, not a panic.
	values := []float64{1, 2, 3, 4}
	labels := []string{"a", "a", "b", "b"}
	classes := []string{"a", "b", "ghost"}

	m := ClassMatrix(values, labels, classes, distance.Hellinger)
	require.Equal(t, 3, m.SymmetricDim())
	assert.Zero(t, m.At(0, 2))
	assert.Zero(t, m.At(1, 2))
	assert.Zero(t, m.At(2, 2))
}
