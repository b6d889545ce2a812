// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package topology

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mpolBind matches Linux's MPOL_BIND mode for set_mempolicy(2).
const mpolBind = 2

// Bind pins the calling OS thread to cpuID and restricts its memory
// policy to the NUMA node owning that CPU, the Go analogue of the
// original engine's cpu_bind (spec.md §4.1, "Bind"). The caller must
// have already called runtime.LockOSThread, since CPU affinity and
// memory policy are per-OS-thread, not per-goroutine.
func (t Topology) Bind(cpuID int) error {
	if cpuID < 0 || cpuID >= t.LogicalCPUs {
		return fmt.Errorf("topology: cpu %d out of range [0,%d)", cpuID, t.LogicalCPUs)
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("topology: set affinity to cpu %d: %w", cpuID, err)
	}

	node := t.CPUNode[cpuID]
	var mask uint64 = 1 << uint(node)
	_, _, errno := unix.Syscall(unix.SYS_SET_MEMPOLICY, uintptr(mpolBind),
		uintptr(unsafe.Pointer(&mask)), 64)
	if errno != 0 {
		return fmt.Errorf("topology: set_mempolicy to node %d: %w", node, errno)
	}
	return nil
}
