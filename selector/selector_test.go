package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featmap/featmap/embed"
)

var allStrategies = []Strategy{RankByAxis, FarthestFromOrigin, KMeansRank, KMedoids}

// testEmbedding builds a 2×6 embedding with two clear groups and no
// duplicate coordinates.
func testEmbedding(t *testing.T) *embed.Embedding {
	t.Helper()
	flat := [][]float64{
		{0, 5.0, 5.0, 0},
		{0, 5.2, 5.2, 0},
		{0, 5.4, 5.4, 0},
		{0, 0.1, 0.1, 0},
		{0, 0.3, 0.3, 0},
		{0, 0.5, 0.5, 0},
	}
	e, err := embed.Map(flat, embed.DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestSelectReturnsKDistinctIndices(t *testing.T) {
	e := testEmbedding(t)

	for _, s := range allStrategies {
		for _, k := range []int{1, 2, 3} {
			selected, err := Select(e, k, s, 0)
			require.NoError(t, err, "strategy %s k=%d", s, k)
			assert.LessOrEqual(t, len(selected), k)
			if s == RankByAxis || s == FarthestFromOrigin {
				require.Len(t, selected, k, "strategy %s must return exactly k", s)
			}

			seen := make(map[int]bool)
			for _, idx := range selected {
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, e.N())
				require.False(t, seen[idx], "strategy %s returned duplicate index %d", s, idx)
				seen[idx] = true
			}
		}
	}
}

func TestSelectIdempotent(t *testing.T) {
	e := testEmbedding(t)

	for _, s := range allStrategies {
		first, err := Select(e, 3, s, 42)
		require.NoError(t, err)
		second, err := Select(e, 3, s, 42)
		require.NoError(t, err)
		assert.Equal(t, first, second, "strategy %s not idempotent", s)
	}
}

func TestSelectInvalidCount(t *testing.T) {
	e := testEmbedding(t)

	for _, s := range allStrategies {
		for _, k := range []int{0, -1, e.N(), e.N() + 1} {
			_, err := Select(e, k, s, 0)
			assert.ErrorIs(t, err, ErrInvalidCount, "strategy %s k=%d", s, k)
		}
	}
}

func TestKMeansRankOnePerCluster(t *testing.T) {
	e := testEmbedding(t)

	// With two tight groups and k=2, the two representatives must come
	// from different groups.
	selected, err := Select(e, 2, KMeansRank, 0)
	require.NoError(t, err)
	require.Len(t, selected, 2)

	groupOf := func(i int) int {
		if i < 3 {
			return 0
		}
		return 1
	}
	assert.NotEqual(t, groupOf(selected[0]), groupOf(selected[1]))
}

func TestKMedoidsReturnsRowIndices(t *testing.T) {
	e := testEmbedding(t)

	selected, err := Select(e, 3, KMedoids, 0)
	require.NoError(t, err)

	pts := e.Points()
	for _, idx := range selected {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(pts))
	}
	assert.IsIncreasing(t, selected)
}

func TestRankByAxisTieBreak(t *testing.T) {
	// Duplicate coordinate values: the lower feature index wins.
	e := &embed.Embedding{
		Coords:      [][]float64{{0.5, 0.5, 0.1, 0.9}},
		Eigenvalues: []float64{1},
	}
	e.Rankings = [][]int{{2, 0, 1, 3}}

	selected, err := Select(e, 3, RankByAxis, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, selected)
}

func TestFarthestFromOrigin(t *testing.T) {
	e := &embed.Embedding{
		Coords: [][]float64{
			{0.1, 3.0, 0.2, 2.0},
			{0.1, 3.0, 0.2, 2.0},
		},
		Eigenvalues: []float64{1, 0.5},
	}

	selected, err := Select(e, 2, FarthestFromOrigin, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, selected)
}

func TestParseStrategy(t *testing.T) {
	for _, name := range Names() {
		s, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseStrategy("pca")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
