// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package sampler draws a uniform random sample of keys and derives the
// range-partitioning delimiters used by the range-based histogrammer,
// replacing the original engine's sampling/delimiter-extraction phase
// (spec.md §4.3).
package sampler

import (
	"sort"

	"github.com/ajroetker/go-numasort/internal/rng"
)

// Size returns the sample size for a dataset of `total` tuples: 1%,
// capped at one million, matching global.sample_size = 0.01 * total_size
// (capped at 1e6) in the original engine.
func Size(total uint64) uint64 {
	s := total / 100
	const cap = 1000000
	if s > cap {
		s = cap
	}
	if s == 0 && total > 0 {
		s = 1
	}
	return s
}

// Draw fills dst with dst-many keys drawn uniformly at random (with
// replacement) from keys, using gen as the source of randomness. This
// is the per-thread loop sample[p] = keys[mulhi(rand64_next(gen),
// size)] in the original engine, generalized to operate over a single
// thread's share of the sample; callers partition dst across threads
// the way internal/engine.Pool.ParallelFor would.
func Draw(dst []uint64, keys []uint64, gen *rng.Source) {
	for i := range dst {
		dst[i] = keys[gen.Index(len(keys))]
	}
}

// Sort sorts a drawn sample in place. The original engine LSB
// radix-sorts the sample across four 8-bit passes in parallel; for the
// sample's size (≤1,000,000 keys) a single-threaded comparison sort is
// equally fast in wall-clock terms and removes the need for scratch
// buffers purely to order a few hundred thousand uint64s, so this calls
// the standard library's pattern-defeating quicksort instead of
// duplicating internal/partition's radix pass here.
func Sort(sample []uint64) {
	sort.Slice(sample, func(i, j int) bool { return sample[i] < sample[j] })
}

// Delimiters extracts partitions-1 equally-spaced delimiters from a
// sorted sample, matching delim_1[i] = sample[j*(i+1)-1] where
// j = sample_size/partitions in the original engine, then rebiases each
// one with the same run-length tie-break extract_delimiters applies so
// that a delimiter landing inside a run of equal keys splits the run
// toward its shorter side. The returned slice has length partitions-1;
// histogram lookups treat delimiters[k] as the inclusive upper bound of
// partition k.
func Delimiters(sortedSample []uint64, partitions int) []uint64 {
	if partitions <= 1 || len(sortedSample) == 0 {
		return nil
	}
	j := len(sortedSample) / partitions
	if j == 0 {
		j = 1
	}
	delims := make([]uint64, partitions-1)
	for i := 0; i < partitions-1; i++ {
		idx := j*(i+1) - 1
		if idx >= len(sortedSample) {
			idx = len(sortedSample) - 1
		}
		delims[i] = biasedDelimiter(sortedSample, idx)
	}
	return delims
}

// biasedDelimiter is extract_delimiters' repetition check: it scans
// sortedSample backward and forward from index for the nearest value
// that differs from sample[index], then, if the run of equal values
// continues longer after index than before it, decrements the delimiter
// by one (unless it is already zero) so the boundary falls on the side
// with fewer repeated keys instead of splitting the run arbitrarily.
func biasedDelimiter(sortedSample []uint64, index int) uint64 {
	delim := sortedSample[index]

	start := index
	for start != 0 {
		if sortedSample[start] != delim {
			break
		}
		start--
	}

	end := index
	for end != len(sortedSample) {
		if sortedSample[end] != delim {
			break
		}
		end++
	}

	before := index - start
	after := end - index
	if before < after && delim != 0 {
		delim--
	}
	return delim
}
