package featmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featmap/featmap/distance"
	"github.com/featmap/featmap/selector"
	"github.com/featmap/featmap/table"
)

// scenario: four features, two classes. Features f0 and f2 separate
// the classes strongly, f1 and f3 barely at all.
func scenarioData() ([]table.Feature, []string) {
	features := []table.Feature{
		{Name: "f0", Values: []float64{0.1, 0.2, 0.15, 8.1, 8.3, 8.2}},
		{Name: "f1", Values: []float64{1.0, 1.1, 0.9, 1.05, 0.95, 1.02}},
		{Name: "f2", Values: []float64{2.0, 2.2, 2.1, 9.0, 9.2, 9.1}},
		{Name: "f3", Values: []float64{0.5, 0.6, 0.4, 0.55, 0.45, 0.62}},
	}
	labels := []string{"a", "a", "a", "b", "b", "b"}
	return features, labels
}

func TestScenarioWassersteinK2(t *testing.T) {
	features, labels := scenarioData()

	// Flattened table: N=4 features, C=2 classes, so 4×4.
	tbl, err := table.Build(features, labels, distance.Wasserstein)
	require.NoError(t, err)
	require.Len(t, tbl.Flat, 4)
	for _, row := range tbl.Flat {
		require.Len(t, row, 4)
	}

	for _, strategy := range []selector.Strategy{
		selector.RankByAxis, selector.FarthestFromOrigin,
		selector.KMeansRank, selector.KMedoids,
	} {
		cfg := DefaultConfig()
		cfg.Strategy = strategy

		res, err := New(cfg).SelectFeatures(features, labels, 2)
		require.NoError(t, err, "strategy %s", strategy)

		// Embedding is 2×4 for d=2.
		require.Len(t, res.Embedding.Coords, 2)
		for _, axis := range res.Embedding.Coords {
			require.Len(t, axis, 4)
		}

		// Exactly 2 distinct indices drawn from {0,1,2,3}.
		require.Len(t, res.Indices, 2, "strategy %s", strategy)
		seen := make(map[int]bool)
		for _, idx := range res.Indices {
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 4)
			require.False(t, seen[idx])
			seen[idx] = true
		}
		require.Len(t, res.Names, 2)
	}
}

func TestDegenerateCountsRejected(t *testing.T) {
	features, labels := scenarioData()
	p := New(DefaultConfig())

	for _, k := range []int{0, -3, len(features), len(features) + 1} {
		_, err := p.SelectFeatures(features, labels, k)
		assert.ErrorIs(t, err, selector.ErrInvalidCount, "k=%d", k)
	}
}

func TestPipelineDeterministic(t *testing.T) {
	features, labels := scenarioData()
	p := New(DefaultConfig())

	r1, err := p.SelectFeatures(features, labels, 2)
	require.NoError(t, err)
	r2, err := p.SelectFeatures(features, labels, 2)
	require.NoError(t, err)

	assert.Equal(t, r1.Indices, r2.Indices)
	assert.Equal(t, r1.Embedding.Coords, r2.Embedding.Coords)
}

func TestAllMetricsRun(t *testing.T) {
	features, labels := scenarioData()

	for _, metric := range []distance.Metric{
		distance.Wasserstein, distance.Bhattacharyya,
		distance.Hellinger, distance.JeffriesMatusita,
	} {
		cfg := DefaultConfig()
		cfg.Metric = metric

		res, err := New(cfg).SelectFeatures(features, labels, 2)
		require.NoError(t, err, "metric %s", metric)
		assert.NotEmpty(t, res.Indices)
	}
}
