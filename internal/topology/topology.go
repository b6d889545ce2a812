// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package topology enumerates logical CPUs, their NUMA node, and the
// chiplet layout, and binds worker threads to the cores the schedule
// assigns them (spec.md §4.1).
package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sys/cpu"
)

// Topology describes the machine's logical CPU and NUMA layout.
type Topology struct {
	// LogicalCPUs is the number of schedulable logical CPUs.
	LogicalCPUs int
	// NUMANodes is the number of NUMA nodes discovered.
	NUMANodes int
	// CPUNode maps a logical CPU index to its owning NUMA node.
	CPUNode []int
	// HasAVX2/HasAVX512 surface the CPU feature flags the simd package's
	// dispatch also reads, so callers can log what the sort engine will
	// actually run with.
	HasAVX2   bool
	HasAVX512 bool
}

// numaNodeRE matches /sys/devices/system/node/node<N> directory names.
var numaNodeRE = regexp.MustCompile(`^node(\d+)$`)

// Probe enumerates the current machine's CPU and NUMA topology. NUMA node
// discovery reads /sys/devices/system/node (Linux); on any other platform,
// or if that path is unreadable (containers, non-Linux CI), it degrades
// to a single NUMA node holding every logical CPU, matching spec.md §4.1
// ("binding degrades to a simple modulo layout" when the real topology
// isn't available).
func Probe() Topology {
	t := Topology{
		LogicalCPUs: runtime.NumCPU(),
		HasAVX2:     cpu.X86.HasAVX2,
		HasAVX512:   cpu.X86.HasAVX512F,
	}

	nodeOf, numNodes := probeNUMA(t.LogicalCPUs)
	t.NUMANodes = numNodes
	t.CPUNode = nodeOf
	return t
}

func probeNUMA(logicalCPUs int) (cpuNode []int, numNodes int) {
	const base = "/sys/devices/system/node"
	entries, err := os.ReadDir(base)
	if err != nil {
		return moduloNodes(logicalCPUs, 1), 1
	}

	var nodeIDs []int
	for _, e := range entries {
		m := numaNodeRE.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		nodeIDs = append(nodeIDs, id)
	}
	if len(nodeIDs) == 0 {
		return moduloNodes(logicalCPUs, 1), 1
	}
	sort.Ints(nodeIDs)

	cpuNode = make([]int, logicalCPUs)
	for i := range cpuNode {
		cpuNode[i] = -1
	}
	for _, id := range nodeIDs {
		cpulist := filepath.Join(base, fmt.Sprintf("node%d", id), "cpulist")
		cpus, err := readCPUList(cpulist)
		if err != nil {
			continue
		}
		for _, c := range cpus {
			if c >= 0 && c < logicalCPUs {
				cpuNode[c] = id
			}
		}
	}

	// Anything the cpulist files didn't cover falls back to node 0 —
	// safer than leaving a -1 that downstream code would need to special
	// case, and consistent with degrading gracefully rather than failing.
	for i := range cpuNode {
		if cpuNode[i] < 0 {
			cpuNode[i] = 0
		}
	}
	return cpuNode, len(nodeIDs)
}

func moduloNodes(logicalCPUs, numNodes int) []int {
	nodes := make([]int, logicalCPUs)
	for i := range nodes {
		nodes[i] = i % numNodes
	}
	return nodes
}

// readCPUList parses a Linux cpulist file, e.g. "0-3,8,10-11".
func readCPUList(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseCPUList(string(data))
}
