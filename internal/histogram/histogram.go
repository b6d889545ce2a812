// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package histogram

import "sort"

// RadixHistogram computes per-key partition tags and bucket counts by
// extracting a `bits`-wide window starting at bit `shift` from each key,
// matching partition_keys's histogramming pass in the LSB radix variant
// (lsb_64_chiplet.c). count has length 1<<bits; ranges has len(keys)
// entries, one partition tag per key.
func RadixHistogram(keys []uint64, shift uint, bits uint) (count []uint64, ranges []uint16) {
	numBuckets := uint64(1) << bits
	mask := numBuckets - 1
	count = make([]uint64, numBuckets)
	ranges = make([]uint16, len(keys))
	for i, k := range keys {
		p := (k >> shift) & mask
		ranges[i] = uint16(p)
		count[p]++
	}
	return count, ranges
}

// RangeHistogram computes per-key partition tags and bucket counts
// against a sorted slice of delimiters, the Go equivalent of the
// original engine's histogram_360/histogram_1000/histogram_1800. Those
// functions encode an 8-way SIMD comparison tree whose result is, by
// the original's own debug assertion
// (`assert(binary_search(delim, 359, keys[i]) == ranges[i])`),
// identical to a plain binary search over the same delimiter array;
// since Go has no portable way to express that hand-tuned SIMD tree,
// this directly computes the equivalent binary search instead of
// reproducing the tree structure for no behavioral difference. count
// has length len(delim)+1; ranges has len(keys) entries.
func RangeHistogram(keys []uint64, delim []uint64) (count []uint64, ranges []uint16) {
	count = make([]uint64, len(delim)+1)
	ranges = make([]uint16, len(keys))
	for i, k := range keys {
		p := binarySearch(delim, k)
		ranges[i] = uint16(p)
		count[p]++
	}
	return count, ranges
}

// binarySearch returns the number of elements of delim strictly less
// than key, the partition index key belongs to under the convention
// that delim[p] is the inclusive upper bound of partition p. Matches
// binary_search in the original engine.
func binarySearch(delim []uint64, key uint64) int {
	return sort.Search(len(delim), func(i int) bool { return key <= delim[i] })
}
