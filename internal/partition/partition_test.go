// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package partition

import (
	"testing"

	"github.com/ajroetker/go-numasort/internal/histogram"
)

func TestPartitionRoutesEveryTupleToItsBucket(t *testing.T) {
	keys := []uint64{5, 25, 15, 35, 8, 28}
	payloads := []uint64{50, 250, 150, 350, 80, 280}
	delim := []uint64{10, 20, 30}

	_, ranges := histogram.RangeHistogram(keys, delim)

	counts := make([]uint64, len(delim)+1)
	for _, p := range ranges {
		counts[p]++
	}
	offsets := Offsets([][]uint64{counts}, 0)

	keysOut := make([]uint64, len(keys))
	payloadsOut := make([]uint64, len(payloads))
	Partition(keys, payloads, ranges, offsets, keysOut, payloadsOut)

	// Key and payload must travel together: payload[i] always equals
	// 10*key[i] in this fixture, so check it survived the reshuffle.
	for i, k := range keysOut {
		if payloadsOut[i] != k*10 {
			t.Errorf("keysOut[%d]=%d paired with payloadsOut[%d]=%d, want %d", i, k, i, payloadsOut[i], k*10)
		}
	}

	var base uint64
	for p := 0; p <= len(delim); p++ {
		for i := uint64(0); i < counts[p]; i++ {
			idx := base + i
			key := keysOut[idx]
			gotP := 0
			for d, bound := range delim {
				if key <= bound {
					gotP = d
					break
				} else {
					gotP = d + 1
				}
			}
			if gotP != p {
				t.Errorf("keysOut[%d]=%d landed in computed bucket %d, want %d", idx, key, gotP, p)
			}
		}
		base += counts[p]
	}
}

func TestPartitionAcrossThreads(t *testing.T) {
	// Two threads, 2 partitions each with its own local counts; Offsets
	// must interleave each thread's contribution within every
	// partition's contiguous output range.
	countsT0 := []uint64{3, 1}
	countsT1 := []uint64{2, 4}
	counts := [][]uint64{countsT0, countsT1}

	off0 := Offsets(counts, 0)
	off1 := Offsets(counts, 1)

	if off0[0] != 0 {
		t.Errorf("off0[0] = %d, want 0", off0[0])
	}
	if off1[0] != 3 {
		t.Errorf("off1[0] = %d, want 3", off1[0])
	}
	// Partition 1 starts after all of partition 0's tuples (3+2=5).
	if off0[1] != 5 {
		t.Errorf("off0[1] = %d, want 5", off0[1])
	}
	if off1[1] != 5+1 {
		t.Errorf("off1[1] = %d, want %d", off1[1], 5+1)
	}
}

func TestBufferFlushesPartialOnDemand(t *testing.T) {
	b := NewBuffer(1, []uint64{0})
	keysOut := make([]uint64, 3)
	payloadsOut := make([]uint64, 3)
	b.Push(0, 1, 10, keysOut, payloadsOut)
	b.Push(0, 2, 20, keysOut, payloadsOut)
	b.Push(0, 3, 30, keysOut, payloadsOut)
	b.Flush(keysOut, payloadsOut)

	want := []uint64{1, 2, 3}
	for i, k := range keysOut {
		if k != want[i] {
			t.Errorf("keysOut[%d] = %d, want %d", i, k, want[i])
		}
	}
}
