// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"testing"

	"github.com/ajroetker/go-numasort/internal/histogram"
	"github.com/ajroetker/go-numasort/internal/rng"
)

func TestSizeCapsAtOneMillion(t *testing.T) {
	cases := []struct {
		total uint64
		want  uint64
	}{
		{0, 0},
		{100, 1},
		{10000, 100},
		{10_000_000_000, 1000000},
	}
	for _, c := range cases {
		if got := Size(c.total); got != c.want {
			t.Errorf("Size(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestDrawStaysWithinKeys(t *testing.T) {
	keys := []uint64{10, 20, 30, 40, 50}
	dst := make([]uint64, 1000)
	gen := rng.New(99)
	Draw(dst, keys, gen)
	for _, v := range dst {
		found := false
		for _, k := range keys {
			if v == k {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("drawn value %d not present in source keys", v)
		}
	}
}

func TestDelimitersMonotonic(t *testing.T) {
	sample := make([]uint64, 1000)
	gen := rng.New(1)
	for i := range sample {
		sample[i] = gen.Next() % 100000
	}
	Sort(sample)

	delims := Delimiters(sample, 10)
	if len(delims) != 9 {
		t.Fatalf("len(delims) = %d, want 9", len(delims))
	}
	for i := 1; i < len(delims); i++ {
		if delims[i] < delims[i-1] {
			t.Errorf("delimiters not monotonic at %d: %d < %d", i, delims[i], delims[i-1])
		}
	}
}

func TestDelimitersSinglePartition(t *testing.T) {
	if got := Delimiters([]uint64{1, 2, 3}, 1); got != nil {
		t.Errorf("Delimiters with 1 partition = %v, want nil", got)
	}
}

func TestBiasedDelimiterPicksShorterSide(t *testing.T) {
	// Run of 9s spans indices 2..6; at index 3 the backward scan stops on
	// the 7 at index 1 (before = 3-1 = 2) and the forward scan stops on
	// the 2 at index 7 (after = 7-3 = 4), so the longer run is after and
	// the delimiter is decremented.
	sample := []uint64{5, 7, 9, 9, 9, 9, 9, 2, 9, 9}
	if got := biasedDelimiter(sample, 3); got != 8 {
		t.Errorf("biasedDelimiter(sample, 3) = %d, want 8", got)
	}

	// At index 5, before = 5-1 = 4 and after = 7-5 = 2: the longer run is
	// before, so the delimiter is left alone.
	if got := biasedDelimiter(sample, 5); got != 9 {
		t.Errorf("biasedDelimiter(sample, 5) = %d, want 9", got)
	}

	// A zero-valued run never decrements, matching extract_delimiters'
	// `delimiter[i]` guard (index 1 has nothing but zeros before it and
	// more after).
	zeros := []uint64{0, 0, 0, 0, 1}
	if got := biasedDelimiter(zeros, 1); got != 0 {
		t.Errorf("biasedDelimiter(zeros, 1) = %d, want 0", got)
	}
}

// TestDelimitersAllDuplicateKeysFunnelToOnePartition covers spec.md §8
// scenario 4: a sample drawn entirely from one repeated key must still
// produce delimiters under which exactly one partition absorbs every
// tuple, never splitting the run across two adjacent partitions.
func TestDelimitersAllDuplicateKeysFunnelToOnePartition(t *testing.T) {
	sample := make([]uint64, 1000)
	for i := range sample {
		sample[i] = 7
	}
	Sort(sample)

	delims := Delimiters(sample, 10)
	if len(delims) != 9 {
		t.Fatalf("len(delims) = %d, want 9", len(delims))
	}
	for i := 1; i < len(delims); i++ {
		if delims[i] < delims[i-1] {
			t.Errorf("delimiters not monotonic at %d: %d < %d", i, delims[i], delims[i-1])
		}
	}

	decremented := false
	for _, d := range delims {
		if d == 6 {
			decremented = true
		} else if d != 7 {
			t.Fatalf("delimiter %d outside {6,7}", d)
		}
	}
	if !decremented {
		t.Fatalf("delims = %v: expected the tie-break rule to decrement at least one delimiter below the run", delims)
	}

	keys := make([]uint64, 1_000_000)
	for i := range keys {
		keys[i] = 7
	}
	counts, _ := histogram.RangeHistogram(keys, delims)
	nonEmpty := 0
	for _, c := range counts {
		if c > 0 {
			nonEmpty++
			if c != uint64(len(keys)) {
				t.Errorf("partition holding the run has count %d, want %d", c, len(keys))
			}
		}
	}
	if nonEmpty != 1 {
		t.Errorf("%d partitions received tuples, want exactly 1", nonEmpty)
	}
}
