// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package partition distributes (key, payload) tuples into their
// assigned partitions using a small per-partition write-behind buffer,
// replacing the original engine's known_partition (spec.md §4.5).
package partition

import "github.com/ajroetker/go-numasort/simd"

// BufCap is the number of tuples each partition's scratch buffer holds
// before it is flushed to the output, matching the original engine's
// 8-tuple (two 64-byte cache line) buffer per partition in
// known_partition. BufCap divides evenly by every lane width simd/
// dispatches to (2, 4, 8), so a full buffer always flushes through
// whole SIMD vectors with no scalar remainder.
const BufCap = 8

// Buffer accumulates tuples per partition and flushes them to the
// output arrays in BufCap-sized batches. scratch packs each partition's
// buffered tuples as interleaved (key, payload) pairs — the layout
// simd.LoadInterleaved2 expects — rather than the original engine's
// unsafely-aliased cursor-in-scratch trick (buf[(p<<4)|14]); Go's
// bounds-checked slices remove the motivation for that aliasing, so the
// cursor is a plain field next to, not inside, the scratch data.
type Buffer struct {
	partitions int
	scratch    []uint64 // partitions * BufCap * 2, interleaved (key, payload)
	fill       []int    // tuples currently buffered per partition
	outPos     []uint64
}

// NewBuffer creates a Buffer for the given partition count. offsets[p]
// is the absolute position in the output arrays where partition p's
// tuples begin, as computed by Offsets.
func NewBuffer(partitions int, offsets []uint64) *Buffer {
	b := &Buffer{
		partitions: partitions,
		scratch:    make([]uint64, partitions*BufCap*2),
		fill:       make([]int, partitions),
		outPos:     make([]uint64, partitions),
	}
	copy(b.outPos, offsets)
	return b
}

// Push buffers one tuple into partition p, flushing the buffer once it
// fills.
func (b *Buffer) Push(p int, key, payload uint64, keysOut, payloadsOut []uint64) {
	base := p * BufCap * 2
	n := b.fill[p]
	b.scratch[base+n*2] = key
	b.scratch[base+n*2+1] = payload
	n++
	b.fill[p] = n
	if n == BufCap {
		b.flushPartition(p, keysOut, payloadsOut)
	}
}

// flushPartition drains partition p's scratch buffer through
// simd.LoadInterleaved2/simd.StoreNonTemporal: LoadInterleaved2
// deinterleaves the buffered AoS (key, payload) pairs into the SoA
// vectors StoreNonTemporal writes into keysOut/payloadsOut. BufCap's
// full-buffer case always divides evenly by the current lane width, so
// simd.ProcessWithTail's tail branch only runs real work when Flush
// drains a partially-filled partition at the end of a pass.
func (b *Buffer) flushPartition(p int, keysOut, payloadsOut []uint64) {
	base := p * BufCap * 2
	n := b.fill[p]
	pos := b.outPos[p]
	scratch := b.scratch[base : base+n*2]

	simd.ProcessWithTail[uint64](n, func(offset int) {
		keys, vals := simd.LoadInterleaved2(scratch[offset*2:])
		simd.StoreNonTemporal(keys, keysOut[int(pos)+offset:])
		simd.StoreNonTemporal(vals, payloadsOut[int(pos)+offset:])
	}, func(offset, count int) {
		for i := 0; i < count; i++ {
			keysOut[int(pos)+offset+i] = scratch[(offset+i)*2]
			payloadsOut[int(pos)+offset+i] = scratch[(offset+i)*2+1]
		}
	})

	b.outPos[p] = pos + uint64(n)
	b.fill[p] = 0
}

// Flush writes out every partition's remaining partially-filled buffer.
// Must be called once after the last Push for a given partitioning
// pass, matching the original engine's drain of leftover buffered
// tuples at the end of known_partition's main loop.
func (b *Buffer) Flush(keysOut, payloadsOut []uint64) {
	for p := 0; p < b.partitions; p++ {
		if b.fill[p] > 0 {
			b.flushPartition(p, keysOut, payloadsOut)
		}
	}
}

// Offsets computes, for threadID, the absolute start offset of each
// partition's slice that this thread owns within the shared output
// arrays: base[p] (the partition's overall start, summed across all
// partitions before p) plus the sum of every other thread's count for
// partition p that sorts before threadID — the Go equivalent of
// partition_offsets in the original engine.
//
// counts[t][p] is thread t's count for partition p, as produced by
// internal/histogram.RadixHistogram/RangeHistogram.
func Offsets(counts [][]uint64, threadID int) []uint64 {
	threads := len(counts)
	if threads == 0 {
		return nil
	}
	partitions := len(counts[0])
	offsets := make([]uint64, partitions)

	var base uint64
	for p := 0; p < partitions; p++ {
		var before uint64
		for t := 0; t < threadID; t++ {
			before += counts[t][p]
		}
		offsets[p] = base + before
		var total uint64
		for t := 0; t < threads; t++ {
			total += counts[t][p]
		}
		base += total
	}
	return offsets
}

// Partition distributes keys/payloads into keysOut/payloadsOut
// according to ranges (one partition tag per tuple, as produced by the
// histogram package) and offsets (this thread's start offset per
// partition, from Offsets). It is the single-threaded inner loop every
// worker runs over its own share of the input; the caller is
// responsible for parallelizing across threads (internal/engine.Pool).
func Partition(keys, payloads []uint64, ranges []uint16, offsets []uint64, keysOut, payloadsOut []uint64) {
	partitions := len(offsets)
	buf := NewBuffer(partitions, offsets)
	for i, p := range ranges {
		buf.Push(int(p), keys[i], payloads[i], keysOut, payloadsOut)
	}
	buf.Flush(keysOut, payloadsOut)
}
