// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package numasort is the public entry point for the NUMA-aware
// partition-and-sort engine: Sort orchestrates topology discovery,
// allocation, sampling, histogramming, partitioning, NUMA shuffling,
// and cache-resident final sorting across two orchestration variants
// (spec.md §7, Sort and Verify).
package numasort

import "errors"

// Sentinel errors returned by Sort/Verify, replacing the original
// engine's abort()/assert()-on-failure style with ordinary Go error
// returns (SPEC_FULL.md §3): callers decide how to react instead of the
// process dying on the first precondition violation.
var (
	// ErrPrecondition is returned when Config or the supplied shards
	// violate one of Sort's input invariants (size, thread, or NUMA
	// node count mismatches).
	ErrPrecondition = errors.New("numasort: precondition violated")
	// ErrOverflow names a size or offset computation that would exceed
	// the capacity of a destination buffer. Neither Sort nor Verify
	// returns it.
	ErrOverflow = errors.New("numasort: buffer overflow")
	// ErrInconsistency is returned by Verify when the sorted output
	// fails a monotonicity, count, or checksum check.
	ErrInconsistency = errors.New("numasort: inconsistent result")
)
