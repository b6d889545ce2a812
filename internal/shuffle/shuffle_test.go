// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package shuffle

import (
	"sync/atomic"
	"testing"

	"github.com/ajroetker/go-numasort/internal/rng"
)

// fixture: 2 nodes, 1 thread per node, 4 global partitions, 2 owned
// by each node.
func fixtureCounts() [][][]uint64 {
	return [][][]uint64{
		{{10, 20, 5, 15}}, // node 0's per-partition counts
		{{3, 7, 12, 8}},   // node 1's per-partition counts
	}
}

func TestPlanCoversAllSourceNodes(t *testing.T) {
	counts := fixtureCounts()
	partitionsPerNode := []int{2, 2}
	gen := rng.New(1)

	transfers := Plan(counts, 0, partitionsPerNode, gen)
	if len(transfers) != 2*2 { // 2 local partitions * 2 source nodes
		t.Fatalf("len(transfers) = %d, want 4", len(transfers))
	}

	var totalSize uint64
	for _, tr := range transfers {
		totalSize += tr.Size
	}
	want := counts[0][0][0] + counts[0][0][1] + counts[1][0][0] + counts[1][0][1]
	if totalSize != want {
		t.Errorf("total transfer size = %d, want %d", totalSize, want)
	}
}

func TestPlanSecondNodeOffsetsPastFirst(t *testing.T) {
	counts := fixtureCounts()
	partitionsPerNode := []int{2, 2}
	gen := rng.New(2)

	transfers := Plan(counts, 1, partitionsPerNode, gen)
	for _, tr := range transfers {
		if tr.SrcNode == 0 && tr.SrcOffset < counts[0][0][0]+counts[0][0][1] {
			t.Errorf("node 1's plan read node 0 at offset %d, want >= %d",
				tr.SrcOffset, counts[0][0][0]+counts[0][0][1])
		}
	}
}

func TestRunCopiesAllTransfers(t *testing.T) {
	transfers := []Transfer{
		{SrcNode: 0, SrcOffset: 0, DstOffset: 0, Size: 3},
		{SrcNode: 1, SrcOffset: 0, DstOffset: 3, Size: 2},
	}
	srcKeys := [][]uint64{{1, 2, 3}, {100, 200}}
	srcPayloads := [][]uint64{{10, 20, 30}, {1000, 2000}}

	keysOut := make([]uint64, 5)
	payloadsOut := make([]uint64, 5)

	var idx atomic.Int64
	pop := func() int {
		i := idx.Add(1) - 1
		if int(i) >= len(transfers) {
			return -1
		}
		return int(i)
	}

	Run(transfers, pop, keysOut, payloadsOut, srcKeys, srcPayloads)

	wantKeys := []uint64{1, 2, 3, 100, 200}
	for i, k := range keysOut {
		if k != wantKeys[i] {
			t.Errorf("keysOut[%d] = %d, want %d", i, k, wantKeys[i])
		}
	}
}
