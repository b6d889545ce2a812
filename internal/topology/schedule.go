// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package topology

// Schedule assigns `threads` workers to CPUs and NUMA nodes, preferring
// real topology: thread t is placed on a CPU that genuinely belongs to
// NUMA node t%numaNodes. When the requested thread or NUMA-node count
// exceeds what the probed topology supports, it degrades to a plain
// modulo layout, mirroring schedule_threads's fallback path in the
// original engine (spec.md §4.1, "thread/NUMA degrade").
//
// Returns cpu (cpu[t] = logical CPU index for thread t) and node
// (node[t] = NUMA node index for thread t).
func (t Topology) Schedule(threads, numaNodes int) (cpu, node []int) {
	if threads <= 0 || numaNodes <= 0 {
		return nil, nil
	}

	threadsPerNUMA := threads / numaNodes
	if numaNodes > t.NUMANodes || threads > t.LogicalCPUs ||
		(threadsPerNUMA > 0 && threadsPerNUMA > t.LogicalCPUs/t.NUMANodes) {
		return t.moduloSchedule(threads, numaNodes)
	}

	cpu = make([]int, threads)
	node = make([]int, threads)

	// cpusOfNode[n] holds the still-available CPUs belonging to node n,
	// consumed front-to-back as threads are assigned to it — the Go
	// analogue of the original's linear scan-and-mark-used-as--1 loop.
	cpusOfNode := make([][]int, t.NUMANodes)
	for c, n := range t.CPUNode {
		cpusOfNode[n] = append(cpusOfNode[n], c)
	}

	for th := 0; th < threads; th++ {
		n := th % numaNodes
		if len(cpusOfNode[n]) == 0 {
			// Topology ran out of distinct CPUs for this node; fall back
			// to modulo assignment for the whole schedule rather than
			// silently reusing a CPU.
			return t.moduloSchedule(threads, numaNodes)
		}
		cpu[th] = cpusOfNode[n][0]
		cpusOfNode[n] = cpusOfNode[n][1:]
		node[th] = n
	}
	return cpu, node
}

func (t Topology) moduloSchedule(threads, numaNodes int) (cpu, node []int) {
	cpu = make([]int, threads)
	node = make([]int, threads)
	threadsPerNUMA := threads / numaNodes
	if threadsPerNUMA == 0 {
		threadsPerNUMA = 1
	}
	for th := 0; th < threads; th++ {
		cpu[th] = th
		node[th] = th / threadsPerNUMA
	}
	return cpu, node
}
