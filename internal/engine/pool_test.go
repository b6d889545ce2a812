// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package engine

import (
	"runtime"
	"sync"
	"testing"
)

func TestNewPool(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewPoolDefault(t *testing.T) {
	pool := NewPool(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestPopCounterExhausts(t *testing.T) {
	c := NewPopCounter(5)
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int]bool{}

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := c.Pop()
				if idx < 0 {
					return
				}
				mu.Lock()
				if seen[idx] {
					t.Errorf("index %d popped twice", idx)
				}
				seen[idx] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 5 {
		t.Errorf("popped %d unique indices, want 5", len(seen))
	}
}
