// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package cachesort

import (
	"math"

	"github.com/ajroetker/go-numasort/simd"
)

// Run is one sorted (keys, payloads) run to be merged.
type Run struct {
	Keys     []uint64
	Payloads []uint64
}

// Merge4Way merges up to four sorted runs into keysOut/payloadsOut in a
// single pass, picking the minimum head across all active (non-
// exhausted) runs at each step.
//
// This generalizes the cache-resident final sort's per-partition comb
// sort (CombSort) to the case where a partition was itself split into
// up to four pieces that were sorted separately and must be recombined before
// the partition's output is final.
func Merge4Way(runs []Run, keysOut, payloadsOut []uint64) {
	const lanes = 4
	if len(runs) > lanes {
		panic("cachesort: Merge4Way accepts at most 4 runs")
	}

	pos := make([]int, lanes)
	length := make([]int, lanes)
	keys := make([][]uint64, lanes)
	payloads := make([][]uint64, lanes)
	for i := 0; i < lanes; i++ {
		if i < len(runs) {
			keys[i] = runs[i].Keys
			payloads[i] = runs[i].Payloads
			length[i] = len(runs[i].Keys)
		}
	}

	out := 0
	var candidates [lanes]uint64
	for {
		active := 0
		for lane := 0; lane < lanes; lane++ {
			if pos[lane] < length[lane] {
				candidates[lane] = keys[lane][pos[lane]]
				active++
			} else {
				candidates[lane] = math.MaxUint64
			}
		}
		if active == 0 {
			break
		}

		best := minLane(candidates)
		if pos[best] >= length[best] {
			// An exhausted lane tied with a live run's math.MaxUint64
			// head; take the lowest-numbered live lane instead.
			for lane := 0; lane < lanes; lane++ {
				if pos[lane] < length[lane] {
					best = lane
					break
				}
			}
		}
		keysOut[out] = keys[best][pos[best]]
		payloadsOut[out] = payloads[best][pos[best]]
		pos[best]++
		out++
	}
}

// minLane returns the index of the smallest of the four candidate head
// keys (exhausted runs stand in math.MaxUint64, so they lose to every
// smaller key; Merge4Way checks the winner against its run length and
// resolves a tie at math.MaxUint64 to a live run),
// loading them into a simd.Vec[uint64] and scanning its lanes. The
// vector only ever holds min(4, simd.MaxLanes[uint64]()) of the four
// candidates, so any candidates past what the current dispatch width
// covers are folded in with a plain scalar compare.
func minLane(candidates [4]uint64) int {
	vec := simd.Load(candidates[:])
	loaded := vec.NumLanes()

	best := 0
	bestKey := simd.GetLane(vec, 0)
	for i := 1; i < loaded; i++ {
		if k := simd.GetLane(vec, i); k < bestKey {
			bestKey = k
			best = i
		}
	}
	for i := loaded; i < len(candidates); i++ {
		if candidates[i] < bestKey {
			bestKey = candidates[i]
			best = i
		}
	}
	return best
}
