// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package alloc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mbindMode mirrors Linux's mempolicy modes used by mbind(2).
const (
	mpolPreferred = 1
	mpolInterleave = 3
)

func mmapAnon(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrOutOfMemory, size, err)
	}
	return mem, nil
}

// Aligned allocates a page-aligned arena of the given size, the plain
// replacement for the original engine's posix_memalign(ptr, 64, size)
// calls (mamalloc). mmap already returns page-aligned (4KiB-aligned,
// a superset of the 64-byte cache-line alignment the original asked
// for) memory, so no extra alignment bookkeeping is needed.
func Aligned(size int) (*Arena, error) {
	mem, err := mmapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Arena{mem: mem}, nil
}

// Hugepage allocates an arena backed by transparent huge pages where the
// kernel permits it, via MADV_HUGEPAGE. Falls back silently to regular
// pages if the advice call fails (e.g. THP disabled), since madvise
// hints are never required for correctness.
func Hugepage(size int) (*Arena, error) {
	mem, err := mmapAnon(size)
	if err != nil {
		return nil, err
	}
	_ = unix.Madvise(mem, unix.MADV_HUGEPAGE)
	return &Arena{mem: mem}, nil
}

// NUMALocal allocates an arena and binds it to NUMA node `node`,
// matching numa_alloc_local/numa_set_membind for a single node in the
// original engine (spec.md §4.2, "node-local buffers").
func NUMALocal(size, node int) (*Arena, error) {
	mem, err := mmapAnon(size)
	if err != nil {
		return nil, err
	}
	if err := mbind(mem, mpolPreferred, uint64(1)<<uint(node)); err != nil {
		unix.Munmap(mem)
		return nil, fmt.Errorf("%w: numa bind to node %d: %v", ErrOutOfMemory, node, err)
	}
	return &Arena{mem: mem}, nil
}

// NUMAInterleaved allocates an arena whose pages are round-robined
// across the given NUMA nodes by the kernel, matching
// numa_alloc_interleaved in the original engine (spec.md §4.2, the
// "--interleaved" run mode for the global sample buffer).
func NUMAInterleaved(size int, nodes int) (*Arena, error) {
	mem, err := mmapAnon(size)
	if err != nil {
		return nil, err
	}
	var mask uint64
	for n := 0; n < nodes && n < 64; n++ {
		mask |= 1 << uint(n)
	}
	if err := mbind(mem, mpolInterleave, mask); err != nil {
		unix.Munmap(mem)
		return nil, fmt.Errorf("%w: numa interleave across %d nodes: %v", ErrOutOfMemory, nodes, err)
	}
	return &Arena{mem: mem}, nil
}

// Release unmaps the arena's backing memory. Using a or any slice view
// into it after Release is undefined behavior.
func Release(a *Arena) error {
	if a == nil || len(a.mem) == 0 {
		return nil
	}
	if err := unix.Munmap(a.mem); err != nil {
		return fmt.Errorf("alloc: munmap: %w", err)
	}
	a.mem = nil
	return nil
}

// mbind wraps the mbind(2) syscall, not exposed directly by
// golang.org/x/sys/unix, via its raw syscall number the package already
// exports (SYS_MBIND) — the same pattern internal/topology.Bind uses
// for set_mempolicy.
func mbind(mem []byte, mode int, nodemask uint64) error {
	if len(mem) == 0 {
		return nil
	}
	_, _, errno := unix.Syscall6(unix.SYS_MBIND,
		uintptr(unsafe.Pointer(&mem[0])), uintptr(len(mem)),
		uintptr(mode), uintptr(unsafe.Pointer(&nodemask)), 64, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
