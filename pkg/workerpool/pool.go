// Package workerpool provides a fixed-size pool for batch parallelism.
//
// Work is divided into independent indexed tasks dispatched to a bounded
// number of goroutines. The caller blocks at Run until every task has
// finished; tasks communicate results by writing to caller-owned slots
// addressed by task index, so aggregation order never depends on
// scheduling.
package workerpool

import (
	"runtime"
	"sync"
)

// Pool bounds the number of tasks running at once.
type Pool struct {
	workers int
}

// New returns a pool running at most workers tasks concurrently.
// workers < 1 selects one worker per available CPU.
func New(workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// Workers reports the degree of parallelism.
func (p *Pool) Workers() int { return p.workers }

// Run executes task(0) .. task(n-1) on the pool and waits for all of them.
// The first error encountered fails the whole run; there is no partial
// recovery, remaining tasks still run to completion before Run returns.
func (p *Pool) Run(n int, task func(i int) error) error {
	if n <= 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, p.workers)

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := task(i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	return firstErr
}

// Partition splits n items into at most parts contiguous ranges.
// Every range is non-empty and the ranges cover 0..n in order.
func Partition(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	if parts < 1 {
		parts = 1
	}
	size := n / parts
	rem := n % parts
	ranges := make([][2]int, 0, parts)
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < rem {
			end++
		}
		ranges = append(ranges, [2]int{start, end})
		start = end
	}
	return ranges
}
