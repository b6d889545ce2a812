// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package shuffle plans and executes the NUMA shuffle: after the first
// partitioning pass each node holds every partition's tuples in its own
// local buffer, and every node must pull the partitions it was assigned
// from every other node's buffer before the second pass can begin
// (spec.md §4.7).
package shuffle

import (
	"github.com/ajroetker/go-numasort/internal/rng"
)

// Transfer describes one contiguous range of tuples to copy from a
// source NUMA node's partition buffer into the destination node's
// local buffer.
type Transfer struct {
	SrcNode   int
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// Plan computes the transfers numaNode must perform to assemble its
// assigned partition range, then randomizes their order, matching the
// original engine's per-node transfer array construction followed by
// a Fisher-Yates shuffle seeded per node
// (`rand64_next(common_gen) ... mulhi(r, transfer_unit-p)+p`).
//
// counts[n][t][p] is thread t on node n's tuple count for global
// partition p, as produced by the first histogram/partition pass.
// partitionsPerNode[n] is how many of the globally-ordered partitions
// node n owns (decide_partitions's part_per_numa in the original).
func Plan(counts [][][]uint64, numaNode int, partitionsPerNode []int, gen *rng.Source) []Transfer {
	numNodes := len(counts)
	threadsPerNode := len(counts[0])
	totalPartitions := len(counts[0][0])

	firstLocalPartition := 0
	for n := 0; n < numaNode; n++ {
		firstLocalPartition += partitionsPerNode[n]
	}
	numLocalPartitions := partitionsPerNode[numaNode]

	// remoteOffset[n] is node n's read cursor into its own partitioned
	// buffer, starting just past every partition this shuffle round
	// doesn't touch (i.e. the partitions owned by lower-numbered nodes).
	remoteOffset := make([]uint64, numNodes)
	for n := 0; n < numNodes; n++ {
		var off uint64
		for p := 0; p < firstLocalPartition; p++ {
			for t := 0; t < threadsPerNode; t++ {
				off += counts[n][t][p]
			}
		}
		remoteOffset[n] = off
	}

	transfers := make([]Transfer, 0, numLocalPartitions*numNodes)
	var localOffset uint64
	for lp := 0; lp < numLocalPartitions; lp++ {
		globalP := firstLocalPartition + lp
		if globalP >= totalPartitions {
			break
		}
		for n := 0; n < numNodes; n++ {
			var remoteSize uint64
			for t := 0; t < threadsPerNode; t++ {
				remoteSize += counts[n][t][globalP]
			}
			transfers = append(transfers, Transfer{
				SrcNode:   n,
				SrcOffset: remoteOffset[n],
				DstOffset: localOffset,
				Size:      remoteSize,
			})
			localOffset += remoteSize
			remoteOffset[n] += remoteSize
		}
	}

	shuffleOrder(transfers, gen)
	return transfers
}

// shuffleOrder performs an in-place Fisher-Yates shuffle using gen,
// matching the original engine's randomized transfer ordering (spreads
// each node's simultaneous remote reads across source nodes instead of
// draining one source node at a time).
func shuffleOrder(transfers []Transfer, gen *rng.Source) {
	n := len(transfers)
	for p := 0; p < n; p++ {
		r := p + gen.Index(n-p)
		transfers[p], transfers[r] = transfers[r], transfers[p]
	}
}

// Run executes transfers against the given per-node key/payload
// buffers, copying each transfer's tuple range from the source node's
// buffer into node dstNode's buffer. Workers on the same node share a
// single PopCounter (internal/engine.PopCounter) so each transfer is
// claimed by exactly one worker via fetch-and-add, matching
// `__sync_fetch_and_add(numa_counter, 1)` in the original engine.
func Run(transfers []Transfer, pop func() int, keysOut, payloadsOut []uint64, srcKeys, srcPayloads [][]uint64) {
	for {
		i := pop()
		if i < 0 || i >= len(transfers) {
			return
		}
		tr := transfers[i]
		copy(keysOut[tr.DstOffset:tr.DstOffset+tr.Size], srcKeys[tr.SrcNode][tr.SrcOffset:tr.SrcOffset+tr.Size])
		copy(payloadsOut[tr.DstOffset:tr.DstOffset+tr.Size], srcPayloads[tr.SrcNode][tr.SrcOffset:tr.SrcOffset+tr.Size])
	}
}
