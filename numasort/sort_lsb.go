// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package numasort

import (
	"time"

	"github.com/ajroetker/go-numasort/internal/cachesort"
	"github.com/ajroetker/go-numasort/internal/engine"
	"github.com/ajroetker/go-numasort/internal/histogram"
	"github.com/ajroetker/go-numasort/internal/partition"
)

// sortLSB implements spec.md's Variant B: multi-pass LSB radix
// partitioning with no sampling step, grounded on lsb_64_chiplet.c's
// partition_keys/distribute_bits pipeline. The first pass's bit window
// folds in the NUMA routing bits (so after pass 0 every node holds
// exactly the tuples it owns), remaining passes refine within each
// node's local buffer, and the final radix window is narrow enough
// that every bucket is cache-resident and CombSort finishes it.
func sortLSB(cfg Config, shards []NodeShard) (Result, Timings, error) {
	var timings Timings
	pool := engine.NewPool(cfg.Threads)
	defer pool.Close()

	numNodes := cfg.NUMANodes
	var totalSize uint64
	for _, s := range shards {
		totalSize += uint64(len(s.Keys))
	}
	millionTuples := totalSize / 1000000

	bits := cfg.Bits
	if bits == 0 {
		bits = 64
	}
	passWidths := histogram.DistributeBits(bits, numNodes, millionTuples)

	// Pass 0: radix-partition each node's local keys by the top
	// passWidths[0] bits (which include the NUMA routing bits), then
	// gather every node's assigned bucket range from every other node —
	// the LSB variant's equivalent of the range variant's sample +
	// histogram + shuffle phases collapsed into one radix pass.
	t0 := time.Now()
	shift := uint(bits - passWidths[0])
	counts := make([][]uint64, numNodes)
	ranges := make([][]uint16, numNodes)
	pool.ParallelFor(numNodes, func(start, end int) {
		for n := start; n < end; n++ {
			c, r := histogram.RadixHistogram(shards[n].Keys, shift, uint(passWidths[0]))
			counts[n] = c
			ranges[n] = r
		}
	})
	timings.Histogram1 = time.Since(t0)

	t0 = time.Now()
	locallyBucketed := make([]NodeShard, numNodes)
	pool.ParallelFor(numNodes, func(start, end int) {
		for n := start; n < end; n++ {
			size := len(shards[n].Keys)
			out := NodeShard{Keys: make([]uint64, size), Payloads: make([]uint64, size)}
			offsets := partition.Offsets(counts[n:n+1], 0)
			partition.Partition(shards[n].Keys, shards[n].Payloads, ranges[n], offsets, out.Keys, out.Payloads)
			locallyBucketed[n] = out
		}
	})
	timings.Partition1 = time.Since(t0)

	// passWidths[0] carries more than just the NUMA routing bits (it is
	// sized for distribute_bits's per-pass cache footprint, same as the
	// range variant's first-level fanout), so its buckets are grouped
	// evenly across nodes rather than mapped one-to-one, the same way
	// the range variant's partitions are, via distributePartitionsAcrossNodes.
	numBuckets0 := 1 << uint(passWidths[0])
	bucketsPerNode := distributePartitionsAcrossNodes(numBuckets0, numNodes)

	t0 = time.Now()
	gathered := make([]NodeShard, numNodes)
	for n := 0; n < numNodes; n++ {
		sizes := partitionSizesForNode(countsAsCube(counts), n, bucketsPerNode)
		var total uint64
		for _, s := range sizes {
			total += s
		}
		gathered[n] = NodeShard{Keys: make([]uint64, total), Payloads: make([]uint64, total)}
	}
	first := make([]int, numNodes)
	for n := 1; n < numNodes; n++ {
		first[n] = first[n-1] + bucketsPerNode[n-1]
	}
	srcOffsets := make([][]uint64, numNodes)
	for src := 0; src < numNodes; src++ {
		srcOffsets[src] = partition.Offsets(counts[src:src+1], 0)
	}
	pool.ParallelFor(numNodes, func(start, end int) {
		for n := start; n < end; n++ {
			var dstOff uint64
			for lb := 0; lb < bucketsPerNode[n]; lb++ {
				bucket := first[n] + lb
				if bucket >= numBuckets0 {
					break
				}
				for src := 0; src < numNodes; src++ {
					srcOff := srcOffsets[src][bucket]
					size := counts[src][bucket]
					copy(gathered[n].Keys[dstOff:dstOff+size], locallyBucketed[src].Keys[srcOff:srcOff+size])
					copy(gathered[n].Payloads[dstOff:dstOff+size], locallyBucketed[src].Payloads[srcOff:srcOff+size])
					dstOff += size
				}
			}
		}
	})
	timings.Shuffle = time.Since(t0)

	// Remaining passes: successive radix refinements within each node's
	// gathered buffer, narrowing the bit window from the high end down,
	// until the final pass's buckets are CombSort-ready.
	t0 = time.Now()
	result := make([]NodeShard, numNodes)
	bitsConsumed := passWidths[0]
	pool.ParallelFor(numNodes, func(start, end int) {
		for n := start; n < end; n++ {
			result[n] = lsbRefineNode(gathered[n], passWidths[1:], bitsConsumed, bits)
		}
	})
	timings.Sort = time.Since(t0)

	var checksum uint64
	for _, s := range result {
		for _, k := range s.Keys {
			checksum += k
		}
	}
	return Result{Shards: result, Checksum: checksum}, timings, nil
}

// lsbBucketSortThreshold is the bucket size below which lsbRefineNode
// stops consuming radix passes and finishes with CombSort directly,
// even if passes remain — a small enough bucket is already
// cache-resident and further radix splitting only adds overhead.
const lsbBucketSortThreshold = 2048

// lsbRefineNode applies the remaining radix passes to one node's
// gathered bucket, recursing bucket-by-bucket, and finishes every
// leaf bucket with CombSort once every pass has been consumed.
func lsbRefineNode(shard NodeShard, remainingPasses []int, bitsConsumed, totalBits int) NodeShard {
	if len(remainingPasses) == 0 || len(shard.Keys) <= lsbBucketSortThreshold {
		out := NodeShard{Keys: append([]uint64(nil), shard.Keys...), Payloads: append([]uint64(nil), shard.Payloads...)}
		cachesort.CombSort(out.Keys, out.Payloads)
		return out
	}

	width := remainingPasses[0]
	shift := uint(totalBits - bitsConsumed - width)
	if shift > 63 {
		shift = 0
	}
	count, ranges := histogram.RadixHistogram(shard.Keys, shift, uint(width))

	offsets := make([]uint64, len(count))
	var base uint64
	for b := range count {
		offsets[b] = base
		base += count[b]
	}
	bucketed := NodeShard{Keys: make([]uint64, len(shard.Keys)), Payloads: make([]uint64, len(shard.Payloads))}
	partition.Partition(shard.Keys, shard.Payloads, ranges, offsets, bucketed.Keys, bucketed.Payloads)

	out := NodeShard{Keys: make([]uint64, len(shard.Keys)), Payloads: make([]uint64, len(shard.Payloads))}
	var pos uint64
	for b := range count {
		sub := count[b]
		sorted := lsbRefineNode(
			NodeShard{Keys: bucketed.Keys[pos : pos+sub], Payloads: bucketed.Payloads[pos : pos+sub]},
			remainingPasses[1:], bitsConsumed+width, totalBits,
		)
		copy(out.Keys[pos:pos+sub], sorted.Keys)
		copy(out.Payloads[pos:pos+sub], sorted.Payloads)
		pos += sub
	}
	return out
}
