// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package alloc provides the aligned, NUMA-aware memory arenas the sort
// engine allocates its key/payload/scratch buffers from, replacing the
// original engine's mamalloc/numa_alloc_local/numa_alloc_interleaved
// trio (spec.md §4.2).
package alloc

import "errors"

// ErrOutOfMemory is returned when an arena cannot be allocated or
// resized, matching the original engine's abort-on-malloc-failure path
// translated into an idiomatic Go error (SPEC_FULL.md §3).
var ErrOutOfMemory = errors.New("alloc: out of memory")

// Arena is a page-backed memory region handed to a single NUMA node (or,
// for interleaved arenas, round-robined across all nodes by the kernel).
// Slice views into it (Uint64 et al.) alias the same backing memory, so
// callers must not let an Arena's Release race with outstanding views.
type Arena struct {
	mem []byte
}

// Bytes returns the full backing slice.
func (a *Arena) Bytes() []byte { return a.mem }

// Uint64 reinterprets the arena (or a sub-range of it) as a []uint64,
// mirroring the original code's uint64_t* casts over posix_memalign'd
// buffers. off and count are in uint64 units.
func (a *Arena) Uint64(off, count int) []uint64 {
	return unsafeUint64Slice(a.mem, off, count)
}

// Uint16 reinterprets a sub-range of the arena as a []uint16, used for
// the per-tuple partition-range tags (spec.md §4.4).
func (a *Arena) Uint16(off, count int) []uint16 {
	return unsafeUint16Slice(a.mem, off, count)
}
