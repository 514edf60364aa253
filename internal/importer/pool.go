package importer

import (
	"context"
	"sync"
	"time"
)

// runPool calls fn for every index in [0, n) on up to workers goroutines.
// With rps > 0 calls are spaced so no more than rps start per second. The
// returned slice holds fn's error per index; indexes never started because
// ctx ended carry ctx.Err().
func runPool(ctx context.Context, workers, rps, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var rate <-chan time.Time
	if rps > 0 {
		t := time.NewTicker(time.Second / time.Duration(rps))
		defer t.Stop()
		rate = t.C
	}

	tasks := make(chan int)
	started := make([]bool, n)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range tasks {
				if rate != nil {
					select {
					case <-ctx.Done():
						continue
					case <-rate:
					}
				}
				if ctx.Err() != nil {
					continue
				}
				started[i] = true
				errs[i] = fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
		case tasks <- i:
			continue
		}
		break
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range errs {
			if !started[i] {
				errs[i] = err
			}
		}
	}
	return errs
}
