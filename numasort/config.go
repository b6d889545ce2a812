// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package numasort

import "fmt"

// Variant selects which of the two orchestration strategies Sort runs:
// range partitioning followed by a second range level for oversized
// partitions (Variant A in spec.md §4), or pure multi-pass radix
// partitioning (Variant B).
type Variant int

const (
	// VariantRange implements spec.md's Variant A: sample-derived range
	// delimiters for the first partitioning level, and a second
	// sample-derived range split (up to four sub-partitions) for any
	// partition above the final-sort chunk threshold. Grounded on
	// cmp_64_chiplet.c.
	VariantRange Variant = iota
	// VariantLSB implements spec.md's Variant B: multi-pass LSB radix
	// partitioning with no sampling step. Grounded on lsb_64_chiplet.c.
	VariantLSB
)

func (v Variant) String() string {
	switch v {
	case VariantRange:
		return "range"
	case VariantLSB:
		return "lsb"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Config holds every knob Sort needs beyond the input shards themselves.
type Config struct {
	// Threads is the total worker thread count across all NUMA nodes.
	Threads int
	// NUMANodes is the number of NUMA nodes the input is split across.
	NUMANodes int
	// Bits is the key bit-width VariantLSB partitions over (64 for full
	// uint64 keys; callers sorting a known-narrower key domain can pass
	// a smaller value to skip high all-zero radix passes).
	Bits int
	// Interleaved records the original engine's --interleaved run mode
	// for reporting. Sort does not read it: its scratch and output
	// buffers are ordinary Go allocations in either case, with no
	// interleaved NUMA placement.
	Interleaved bool
	// Variant selects the orchestration strategy.
	Variant Variant
	// FinalSortChunkThreshold is the per-partition tuple count above
	// which the cache-resident final sort range-splits a partition into
	// up to four sub-partitions, CombSorts them one after another, and
	// merges them back together with cachesort.Merge4Way, instead of a
	// single CombSort pass. Defaults to 1,500,000 (the cache budget
	// histogram.DecidePartitions also assumes) when zero.
	FinalSortChunkThreshold int
}

// Validate checks Config's invariants, replacing the original engine's
// assert()-on-bad-input style with a returned error.
func (c Config) Validate() error {
	if c.Threads <= 0 {
		return fmt.Errorf("%w: Threads must be positive, got %d", ErrPrecondition, c.Threads)
	}
	if c.NUMANodes <= 0 {
		return fmt.Errorf("%w: NUMANodes must be positive, got %d", ErrPrecondition, c.NUMANodes)
	}
	if c.Threads < c.NUMANodes {
		return fmt.Errorf("%w: Threads (%d) must be >= NUMANodes (%d)", ErrPrecondition, c.Threads, c.NUMANodes)
	}
	if c.Threads%c.NUMANodes != 0 {
		return fmt.Errorf("%w: Threads (%d) must divide evenly by NUMANodes (%d)", ErrPrecondition, c.Threads, c.NUMANodes)
	}
	if c.Bits < 0 || c.Bits > 64 {
		return fmt.Errorf("%w: Bits must be in [0,64], got %d", ErrPrecondition, c.Bits)
	}
	return nil
}

func (c Config) chunkThreshold() int {
	if c.FinalSortChunkThreshold > 0 {
		return c.FinalSortChunkThreshold
	}
	return 1500000
}
