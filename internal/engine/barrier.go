// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package engine

import "sync"

// Barrier is a cyclic counting barrier, the Go equivalent of the original
// engine's pthread_barrier_wait. Every phase transition in spec.md §4.9
// ("Bind → Alloc → Sample → Hist1 → Part1 → (barrier) → Shuffle? → ...")
// is a Wait() on one of these: node-local barriers gate same-node phases,
// a barrier sized to all threads gates cross-node phases (spec.md §5).
//
// There is no barrier type in the standard library or in any example
// repo's dependency set; a cyclic barrier is a handful of lines over
// sync.Mutex/sync.Cond and pulling in a dependency for it would not track
// anything the corpus actually reaches for (see DESIGN.md).
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
}

// NewBarrier creates a barrier for the given number of parties (workers).
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until `parties` callers have all called Wait for the current
// generation, then releases them all together. Matches the publication
// guarantee spec.md §5 requires: writes issued by any worker before the
// barrier become visible to every worker once Wait returns, because the
// release path goes through sync.Cond's lock, which provides the
// happens-before edge the Go memory model guarantees (no explicit store
// fence API is needed on top of that — see SPEC_FULL.md §6.4).
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}

// Parties returns the number of workers this barrier synchronizes.
func (b *Barrier) Parties() int { return b.parties }
