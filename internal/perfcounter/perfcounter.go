// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package perfcounter exposes hardware performance counters (cycles,
// instructions, cache misses) for phase timing, replacing the original
// engine's perf_counter.h (libpfm-backed) facade (spec.md §6.12). On
// platforms without perf_event_open support it degrades to a no-op
// Counter that reports zero for every metric, so callers never need to
// branch on availability.
package perfcounter

// Counter is a named hardware performance counter attached to the
// calling OS thread.
type Counter interface {
	// Start begins counting.
	Start() error
	// Stop ends counting.
	Stop() error
	// Read returns the accumulated count since the last Start.
	Read() (uint64, error)
	// Close releases the underlying counter resource.
	Close() error
}

// Event names the hardware event a Counter tracks, matching the
// event names PerfCounter_init registers in the original engine
// (cycles, instructions, and the cache-miss counters the sort engine's
// benchmark harness reports alongside phase timings).
type Event string

const (
	EventCycles       Event = "cycles"
	EventInstructions Event = "instructions"
	EventCacheMisses  Event = "cache-misses"
	EventCacheRefs    Event = "cache-references"
)

// noop is the degrade-path Counter used wherever perf_event_open isn't
// available (non-Linux platforms, or a kernel that denies the syscall
// to an unprivileged process).
type noop struct{}

func (noop) Start() error          { return nil }
func (noop) Stop() error           { return nil }
func (noop) Read() (uint64, error) { return 0, nil }
func (noop) Close() error          { return nil }
