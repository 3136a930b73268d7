package experiment

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKFoldsPartition(t *testing.T) {
	const n, k = 23, 5

	folds, err := KFolds(n, k, 0)
	require.NoError(t, err)
	require.Len(t, folds, k)

	var allVal []int
	for _, f := range folds {
		assert.Len(t, f.Train, n-len(f.Val))
		allVal = append(allVal, f.Val...)

		// Train and validation are disjoint.
		inVal := make(map[int]bool, len(f.Val))
		for _, idx := range f.Val {
			inVal[idx] = true
		}
		for _, idx := range f.Train {
			assert.False(t, inVal[idx], "index %d in both train and val", idx)
		}
	}

	// Every row lands in exactly one validation fold.
	sort.Ints(allVal)
	require.Len(t, allVal, n)
	for i, idx := range allVal {
		assert.Equal(t, i, idx)
	}
}

func TestKFoldsDeterministic(t *testing.T) {
	f1, err := KFolds(50, 5, 7)
	require.NoError(t, err)
	f2, err := KFolds(50, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)

	f3, err := KFolds(50, 5, 8)
	require.NoError(t, err)
	assert.NotEqual(t, f1, f3, "different seeds should shuffle differently")
}

func TestKFoldsErrors(t *testing.T) {
	_, err := KFolds(10, 1, 0)
	assert.Error(t, err)

	_, err = KFolds(3, 5, 0)
	assert.Error(t, err)
}
