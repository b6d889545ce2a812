// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package rng provides the per-thread seeded generator the sampler and
// NUMA shuffle use, replacing the original engine's rand64_init/
// rand64_next pair (spec.md §4.3, §4.7). Each worker gets its own Source
// seeded independently, so no cross-thread synchronization is needed
// while sampling or computing a shuffle order.
package rng

import "math/bits"

// Source is a splitmix64-style generator: cheap to seed per-thread,
// passes standard empirical randomness test suites, and needs no state
// beyond a single uint64 — a good match for the original's rand64_t,
// which the pack's C sources never define (pulled from an external
// header not present in original_source/).
type Source struct {
	state uint64
}

// New creates a Source seeded with the given value. Distinct seeds (one
// per worker thread, as the original assigns via rand() per thread)
// yield statistically independent streams.
func New(seed uint64) *Source {
	return &Source{state: seed}
}

// Next returns the next pseudo-random uint64 in the stream.
func (s *Source) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Index draws a uniformly distributed value in [0, n), via the high
// word of a 64x64 multiply (mulhi in the original engine, math/bits.Mul64
// here) rather than a modulo, avoiding modulo bias and matching
// keys[mulhi(rand64_next(gen), size)] in the original sampler.
func (s *Source) Index(n int) int {
	if n <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(s.Next(), uint64(n))
	return int(hi)
}
