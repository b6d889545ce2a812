// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package topology

import "testing"

func TestParseCPUList(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"0-3", []int{0, 1, 2, 3}},
		{"0-3,8,10-11", []int{0, 1, 2, 3, 8, 10, 11}},
		{"5", []int{5}},
	}
	for _, c := range cases {
		got, err := parseCPUList(c.in)
		if err != nil {
			t.Fatalf("parseCPUList(%q) error: %v", c.in, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("parseCPUList(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("parseCPUList(%q)[%d] = %d, want %d", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestModuloNodes(t *testing.T) {
	got := moduloNodes(8, 2)
	want := []int{0, 1, 0, 1, 0, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("moduloNodes(8,2)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestChipletPermute(t *testing.T) {
	// First group-of-16 within a block maps to the identity for the
	// first column (offset/groupSize == 0, offset%groupSize == offset).
	got := ChipletPermute(0, DefaultBlockSize, DefaultGroupSize)
	if got != 0 {
		t.Errorf("ChipletPermute(0) = %d, want 0", got)
	}
	// n=1 should land in the second "column": offset=1, base=0,
	// 1/16=0, (1%16)*(128/16) = 1*8 = 8.
	got = ChipletPermute(1, DefaultBlockSize, DefaultGroupSize)
	if got != 8 {
		t.Errorf("ChipletPermute(1) = %d, want 8", got)
	}
	// n=16 is the start of the second group: offset=16, 16/16=1, (16%16)*8=0 -> 1.
	got = ChipletPermute(16, DefaultBlockSize, DefaultGroupSize)
	if got != 1 {
		t.Errorf("ChipletPermute(16) = %d, want 1", got)
	}
	// A full block boundary returns to identity at the next base.
	got = ChipletPermute(DefaultBlockSize, DefaultBlockSize, DefaultGroupSize)
	if got != DefaultBlockSize {
		t.Errorf("ChipletPermute(blockSize) = %d, want %d", got, DefaultBlockSize)
	}
}

func TestScheduleModuloFallback(t *testing.T) {
	top := Topology{LogicalCPUs: 4, NUMANodes: 1, CPUNode: []int{0, 0, 0, 0}}
	cpu, node := top.Schedule(8, 2)
	if len(cpu) != 8 || len(node) != 8 {
		t.Fatalf("Schedule returned wrong lengths: %d, %d", len(cpu), len(node))
	}
	// Requesting more NUMA nodes than the topology has forces the
	// modulo degrade path.
	for i, n := range node {
		want := i / (8 / 2)
		if n != want {
			t.Errorf("node[%d] = %d, want %d", i, n, want)
		}
	}
}

func TestScheduleRealTopology(t *testing.T) {
	top := Topology{
		LogicalCPUs: 4,
		NUMANodes:   2,
		CPUNode:     []int{0, 1, 0, 1},
	}
	cpu, node := top.Schedule(4, 2)
	if len(cpu) != 4 {
		t.Fatalf("Schedule returned %d cpus, want 4", len(cpu))
	}
	for t2 := range cpu {
		if top.CPUNode[cpu[t2]] != node[t2] {
			t.Errorf("thread %d assigned cpu %d (node %d), but Schedule says node %d",
				t2, cpu[t2], top.CPUNode[cpu[t2]], node[t2])
		}
	}
}
