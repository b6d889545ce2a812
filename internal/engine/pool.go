// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package engine provides the persistent worker pool and the barrier
// primitives the sort pipeline's state machine (spec.md §4.9) is built
// from. Unlike per-phase goroutine spawning, a Pool is created once for
// the whole sort and reused across every phase, eliminating spawn
// overhead from the hot partitioning and shuffle loops.
package engine

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool reused across every phase of a sort.
// Workers are spawned once at creation and parked on a channel between
// phases.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// NewPool creates a pool with the given number of workers. If numWorkers
// <= 0, GOMAXPROCS is used.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close shuts the pool down. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor statically partitions [0, n) into one contiguous chunk per
// worker and calls fn(start, end) for each. This is the partitioning
// discipline spec.md §4.5 requires for the buffered partitioner: disjoint
// slices of input mapped to disjoint slabs of output, no cross-worker
// atomics inside the inner loop.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunk
		end := min(start+chunk, n)
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForAtomic executes fn(i) for each index in [0, n) using
// fetch-and-add work stealing. Used where per-item cost varies, such as
// the per-partition cache-resident sort stage (spec.md §4.9: "Hist2/Part2/
// Sort per partition (work-steal)").
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(next.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// PopCounter is a shared fetch-and-add counter used by the NUMA shuffle
// phase (spec.md §4.7 step 4: "Workers of the node pop transfers from a
// shared counter"). Each call returns a unique, monotonically increasing
// index starting at 0 until it reaches n, after which it returns -1.
type PopCounter struct {
	next atomic.Int64
	n    int64
}

// NewPopCounter creates a counter that yields indices [0, n).
func NewPopCounter(n int) *PopCounter {
	return &PopCounter{n: int64(n)}
}

// Pop returns the next index, or -1 once exhausted.
func (c *PopCounter) Pop() int {
	idx := c.next.Add(1) - 1
	if idx >= c.n {
		return -1
	}
	return int(idx)
}
