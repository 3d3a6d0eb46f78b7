// Package parallel provides helpers for splitting elementwise work across
// CPU cores. The solvers only ever parallelize within a single step, never
// across optimizer iterations, because each iteration reads the previous
// one's coefficients.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items across up to NumCPU workers and runs fn on each
// half-open range [start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item is covered.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at or below
// the threshold, in parallel otherwise. Spawning goroutines for tiny inputs
// costs more than it saves.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
