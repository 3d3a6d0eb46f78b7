package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100, 1001} {
		var visited atomic.Int64
		Parallelize(items, func(start, end int) {
			visited.Add(int64(end - start))
		})
		if got := visited.Load(); got != int64(items) {
			t.Errorf("items=%d: visited %d ranges, want %d", items, got, items)
		}
	}
}

func TestParallelizeWithThresholdSequentialBelow(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential path should see the whole range, got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path should call fn once, got %d", calls)
	}
}
