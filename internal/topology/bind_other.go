// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package topology

import "fmt"

// Bind is a no-op degrade on non-Linux platforms: CPU affinity and
// mempolicy are Linux-specific syscalls, so there is nothing to bind to
// here. Callers on such platforms still run correctly, just without
// NUMA locality guarantees (spec.md §4.1's degrade path).
func (t Topology) Bind(cpuID int) error {
	if cpuID < 0 || cpuID >= t.LogicalCPUs {
		return fmt.Errorf("topology: cpu %d out of range [0,%d)", cpuID, t.LogicalCPUs)
	}
	return nil
}
