package experiment

import (
	"fmt"
	"math/rand"
)

// Fold is one cross-validation split: disjoint train and validation
// row indices that together cover the dataset.
type Fold struct {
	Train []int
	Val   []int
}

// KFolds splits n rows into k folds after a seeded shuffle. Every row
// appears in exactly one validation set; fold boundaries distribute the
// remainder across the first folds.
func KFolds(n, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("experiment: kfolds %d must be at least 2", k)
	}
	if n < k {
		return nil, fmt.Errorf("experiment: %d rows cannot be split into %d folds", n, k)
	}

	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(n)

	folds := make([]Fold, k)
	base := n / k
	rem := n % k
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < rem {
			size++
		}
		val := order[start : start+size]
		train := make([]int, 0, n-size)
		train = append(train, order[:start]...)
		train = append(train, order[start+size:]...)
		folds[i] = Fold{
			Train: append([]int(nil), train...),
			Val:   append([]int(nil), val...),
		}
		start += size
	}
	return folds, nil
}
