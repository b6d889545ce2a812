// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package cachesort sorts cache-resident partitions in place: a
// gap-shrinking comb sort for the bulk of each partition, an insertion
// sort for small runs, and a 4-way merge to recombine sorted runs once
// a partition has been split for parallel sorting (spec.md §4.8).
package cachesort

import "github.com/ajroetker/go-numasort/simd"

// insertionThreshold matches the original engine's simd_combsort cutoff
// (size <= 9 falls straight to insertsort).
const insertionThreshold = 9

// shrink is the comb sort gap-shrink factor, matching scalar_combsort_
// keys/simd_combsort's `const float shrink = 0.77`.
const shrink = 0.77

// CombSort sorts keys in place (payloads moved alongside, key-wise),
// replicating scalar_combsort_keys/simd_combsort's gap-shrinking
// bubble-sort variant: gap starts at size*shrink and shrinks by the
// same factor each pass until it reaches 1, at which point the pass
// degenerates into an ordinary bubble sort that repeats until a pass
// makes no swaps.
func CombSort(keys, payloads []uint64) {
	size := len(keys)
	if size <= insertionThreshold {
		insertionSort(keys, payloads)
		return
	}

	gap := int(float64(size) * shrink)
	for {
		done := combPass(keys, payloads, gap)
		if gap > 1 {
			gap = int(float64(gap) * shrink)
			if gap < 1 {
				gap = 1
			}
		} else if done {
			break
		}
	}
}

// combPass runs one gap-strided compare-swap pass over keys/payloads and
// reports whether it made no swaps.
//
// For gap >= the vector lane count, the pairs (i, i+gap) for one
// vector's worth of consecutive i share no index with each other, so
// they can be compared and blended together with
// simd.GreaterThan/simd.IfThenElse in one shot, same as
// simd_combsort's vectorized body. The trailing pairs that don't fill a
// whole vector, and every pass whose gap is below the lane count
// (including the gap-1 bubble-sort finishing stage, which must see its
// own swaps immediately to reach a true fixed point), run through the
// scalar loop instead.
func combPass(keys, payloads []uint64, gap int) bool {
	size := len(keys)
	done := true
	lanes := simd.MaxLanes[uint64]()
	i := 0
	if gap >= lanes {
		for ; i+gap+lanes <= size; i += lanes {
			left := simd.LoadFull(keys[i : i+lanes])
			right := simd.LoadFull(keys[i+gap : i+gap+lanes])
			swap := simd.GreaterThan(left, right)
			if swap.AnyTrue() {
				done = false
			}
			simd.StoreFull(simd.IfThenElse(swap, right, left), keys[i:i+lanes])
			simd.StoreFull(simd.IfThenElse(swap, left, right), keys[i+gap:i+gap+lanes])

			pLeft := simd.LoadFull(payloads[i : i+lanes])
			pRight := simd.LoadFull(payloads[i+gap : i+gap+lanes])
			simd.StoreFull(simd.IfThenElse(swap, pRight, pLeft), payloads[i:i+lanes])
			simd.StoreFull(simd.IfThenElse(swap, pLeft, pRight), payloads[i+gap:i+gap+lanes])
		}
	}
	for j := i; j+gap < size; j++ {
		if keys[j] > keys[j+gap] {
			keys[j], keys[j+gap] = keys[j+gap], keys[j]
			payloads[j], payloads[j+gap] = payloads[j+gap], payloads[j]
			done = false
		}
	}
	return done
}

// insertionSort sorts keys (and payloads alongside) for small runs,
// matching insertsort in the original engine: a standard shift-based
// insertion sort rather than comb sort's exchange passes, since the
// constant overhead of gap computation isn't worth it below
// insertionThreshold elements.
func insertionSort(keys, payloads []uint64) {
	if len(keys) <= 1 {
		return
	}
	for i := 1; i < len(keys); i++ {
		k, v := keys[i], payloads[i]
		j := i - 1
		for j >= 0 && keys[j] > k {
			keys[j+1] = keys[j]
			payloads[j+1] = payloads[j]
			j--
		}
		keys[j+1] = k
		payloads[j+1] = v
	}
}
