// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package engine

import "sync/atomic"

// Engine is the explicit, passed-by-value-handle replacement for the
// original C engine's heap-allocated descriptor struct shared across
// threads via raw pointers (spec.md §9, "Global mutable state" design
// note: "Re-architect as an explicit 'engine' value passed to workers;
// phase-counter atomics live inside it.").
//
// Engine owns the worker pool, the per-node and global barriers, and the
// fetch-and-add counters shared during the NUMA shuffle (spec.md §5,
// "Shared resources": numa_counter[node], part_counter[node]).
type Engine struct {
	Pool *Pool

	threads    int
	numaNodes  int
	threadNode []int // threadNode[t] = NUMA node owning thread t

	nodeBarriers []*Barrier
	global       *Barrier

	numaCounters []atomic.Int64
	partCounters []atomic.Int64
}

// New builds an Engine for the given thread count, NUMA node count, and
// thread->node assignment (as produced by internal/topology.Schedule).
func New(pool *Pool, threads, numaNodes int, threadNode []int) *Engine {
	e := &Engine{
		Pool:         pool,
		threads:      threads,
		numaNodes:    numaNodes,
		threadNode:   threadNode,
		global:       NewBarrier(threads),
		numaCounters: make([]atomic.Int64, numaNodes),
		partCounters: make([]atomic.Int64, numaNodes),
	}

	threadsPerNode := make([]int, numaNodes)
	for _, n := range threadNode {
		if n >= 0 && n < numaNodes {
			threadsPerNode[n]++
		}
	}
	e.nodeBarriers = make([]*Barrier, numaNodes)
	for n := range numaNodes {
		parties := threadsPerNode[n]
		if parties == 0 {
			parties = 1
		}
		e.nodeBarriers[n] = NewBarrier(parties)
	}
	return e
}

// Threads returns the total worker thread count.
func (e *Engine) Threads() int { return e.threads }

// NumaNodes returns the number of NUMA nodes in play.
func (e *Engine) NumaNodes() int { return e.numaNodes }

// NodeOf returns the NUMA node owning thread t.
func (e *Engine) NodeOf(t int) int { return e.threadNode[t] }

// NodeBarrier returns the barrier local to the node owning thread t,
// used for same-node phase transitions (spec.md §5).
func (e *Engine) NodeBarrier(t int) *Barrier { return e.nodeBarriers[e.threadNode[t]] }

// GlobalBarrier returns the barrier spanning all threads, for
// cross-node phase transitions (spec.md §4.3, §4.7 step 5). The
// numasort orchestrator does not build an Engine; its sample and
// shuffle phases synchronize through Pool.ParallelFor returning.
func (e *Engine) GlobalBarrier() *Barrier { return e.global }

// NumaCounterAdd performs a fetch-and-add on node n's shuffle counter and
// returns the pre-add value, matching numa_counter[node] in spec.md §5.
func (e *Engine) NumaCounterAdd(n int, delta int64) int64 {
	return e.numaCounters[n].Add(delta) - delta
}

// PartCounterAdd performs a fetch-and-add on node n's partition counter
// and returns the pre-add value, matching part_counter[node] in spec.md §5.
func (e *Engine) PartCounterAdd(n int, delta int64) int64 {
	return e.partCounters[n].Add(delta) - delta
}
