// Package parallel provides parallel execution helpers for the
// experiment sweep. Parallelism is applied at combination granularity:
// one worker per (percentage, dimension, metric, bandwidth) combination,
// never inside an eigendecomposition.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default worker count for parallel sweeps.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// ForEach executes fn for every index in [0, n) using the given number
// of workers. With workers <= 1 it degrades to a plain loop.
func ForEach(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	work := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		work <- i
	}
	close(work)
	wg.Wait()
}
