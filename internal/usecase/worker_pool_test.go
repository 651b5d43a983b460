package usecase

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestNormalizeWorkerCount(t *testing.T) {
	tests := []struct {
		requested int
		tasks     int
		want      int
	}{
		{requested: 0, tasks: 10, want: 1},
		{requested: -3, tasks: 10, want: 1},
		{requested: 4, tasks: 10, want: 4},
		{requested: 8, tasks: 3, want: 3},
		{requested: 8, tasks: 0, want: 8},
	}
	for _, tc := range tests {
		if got := normalizeWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeWorkerCount(%d, %d) = %d, want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}

func TestForEachBounded_VisitsEveryIndex(t *testing.T) {
	const n = 50
	var seen sync.Map
	var calls atomic.Int32

	if err := forEachBounded(4, n, func(i int) {
		seen.Store(i, true)
		calls.Add(1)
	}); err != nil {
		t.Fatalf("forEachBounded: %v", err)
	}

	if calls.Load() != n {
		t.Fatalf("expected %d calls, got %d", n, calls.Load())
	}
	for i := 0; i < n; i++ {
		if _, ok := seen.Load(i); !ok {
			t.Fatalf("index %d was not visited", i)
		}
	}
}

func TestForEachBounded_SingleWorkerRunsSequentially(t *testing.T) {
	var inFlight atomic.Int32
	var maxInFlight atomic.Int32

	err := forEachBounded(1, 20, func(int) {
		current := inFlight.Add(1)
		if current > maxInFlight.Load() {
			maxInFlight.Store(current)
		}
		inFlight.Add(-1)
	})
	if err != nil {
		t.Fatalf("forEachBounded: %v", err)
	}
	if maxInFlight.Load() != 1 {
		t.Fatalf("expected at most one task in flight, got %d", maxInFlight.Load())
	}
}

func TestForEachBounded_Empty(t *testing.T) {
	if err := forEachBounded(3, 0, func(int) { t.Fatalf("fn must not be called") }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
