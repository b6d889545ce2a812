// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package histogram computes per-tuple partition assignments (by radix
// window or by range delimiter) and the bucket counts that drive the
// buffered partitioner, and decides how many partitions/bit-passes each
// orchestration variant should use (spec.md §4.4).
package histogram

// fanout is the partition-count table the greedy search in
// DecidePartitions draws from, matching {1, 360, 1000, 1800} in the
// original engine's decide_partitions.
var fanout = [4]uint64{1, 360, 1000, 1800}

// cacheBudget is the number of tuples assumed to fit resident in cache
// per partition, matching decide_partitions's `cache = 1500000`.
const cacheBudget = 1500000

// DecidePartitions picks the two-level partition fanout (p1, p2) for
// Variant A's range+radix split, replicating decide_partitions: first
// try a single level whose fanout covers `numa` nodes and keeps each
// partition within the cache budget; else try every two-level product;
// else fall back to the largest fanout squared.
func DecidePartitions(size uint64, numa int) (p1, p2 uint64) {
	n := uint64(numa)

	for i := 1; i <= 3; i++ {
		if fanout[i]*cacheBudget >= size && fanout[i] >= n {
			return fanout[i], fanout[0]
		}
	}
	for i := 1; i <= 3; i++ {
		for j := 1; j <= i; j++ {
			if fanout[i]*fanout[j]*cacheBudget >= size && fanout[i] >= n {
				return fanout[i], fanout[j]
			}
		}
	}
	return fanout[3], fanout[3]
}

// ceilDiv returns ceil(x/y) for positive y, matching ceil_div in the
// original engine.
func ceilDiv(x, y int) int {
	return (x + y - 1) / y
}

// ceilLog2 returns the smallest power such that 1<<power >= x,
// matching ceil_log_2 in the original engine.
func ceilLog2(x uint64) int {
	power := 0
	for (uint64(1) << uint(power)) < x && power != 64 {
		power++
	}
	return power
}

// bitLimits are the per-pass-count thresholds distribute_bits searches,
// depending on dataset scale; large runs (>=100M tuples, by the
// original's `global_tuples >= 100` convention in units of millions of
// tuples) use the higher-threshold table so each pass stays within the
// same per-pass cache footprint despite needing more total bits.
var bitLimitsSmall = [6]int{12, 23, 34, 45, 56, 67}
var bitLimitsLarge = [6]int{14, 27, 40, 53, 66, 67}

// DistributeBits computes the per-pass radix bit-widths for Variant B's
// multi-pass LSB radix sort, replicating distribute_bits: the first
// pass absorbs the NUMA routing bits, and the bit budget is spread as
// evenly as possible across the chosen number of passes.
//
// millionTuples is the dataset size in millions of tuples, selecting
// between the two bitLimits tables exactly as the original's
// `global_tuples >= 100` check does.
func DistributeBits(bits, numaNodes int, millionTuples uint64) []int {
	numaBits := ceilLog2(uint64(numaNodes))
	endBits := 0
	if numaBits > 0 {
		endBits = 1
	}
	totalBits := bits + numaBits

	limits := bitLimitsSmall[:]
	if millionTuples >= 100 {
		limits = bitLimitsLarge[:]
	}

	passes := 0
	for {
		cont := limits[passes] < totalBits
		passes++
		if !cont {
			break
		}
	}

	pass := make([]int, passes)
	pass[0] = ceilDiv(totalBits-endBits, passes) - numaBits
	remBits := bits - pass[0]
	for p := 1; p != passes; p++ {
		pass[p] = ceilDiv(remBits-endBits, passes-p)
		remBits -= pass[p]
	}
	pass[passes-1] += endBits
	return pass
}
