package usecase

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

func normalizeWorkerCount(requested, tasks int) int {
	if requested < 1 {
		requested = 1
	}
	if tasks > 0 && requested > tasks {
		requested = tasks
	}
	return requested
}

// forEachBounded runs fn for every index in [0, n) on at most workers
// goroutines. With one worker the items run one at a time in order.
func forEachBounded(workers, n int, fn func(i int)) error {
	if n == 0 {
		return nil
	}

	pool, err := ants.NewPool(normalizeWorkerCount(workers, n))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var submitErr error
	for i := 0; i < n; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit task %d to worker pool: %w", i, err)
			break
		}
	}

	wg.Wait()
	return submitErr
}
