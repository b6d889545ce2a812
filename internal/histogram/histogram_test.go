// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package histogram

import "testing"

func TestRadixHistogramBucketsSumToSize(t *testing.T) {
	keys := []uint64{0x00, 0x01, 0x10, 0x11, 0xFF, 0x23}
	count, ranges := RadixHistogram(keys, 0, 4)
	if len(count) != 16 {
		t.Fatalf("len(count) = %d, want 16", len(count))
	}
	var total uint64
	for _, c := range count {
		total += c
	}
	if total != uint64(len(keys)) {
		t.Errorf("sum(count) = %d, want %d", total, len(keys))
	}
	for i, k := range keys {
		want := uint16(k & 0xF)
		if ranges[i] != want {
			t.Errorf("ranges[%d] = %d, want %d", i, ranges[i], want)
		}
	}
}

func TestRadixHistogramShift(t *testing.T) {
	keys := []uint64{0x100, 0x200, 0x1FF}
	count, ranges := RadixHistogram(keys, 8, 4)
	if count[1] != 2 { // 0x100 and 0x1FF both have byte-8 nibble 1
		t.Errorf("count[1] = %d, want 2", count[1])
	}
	if ranges[1] != 2 {
		t.Errorf("ranges[1] = %d, want 2", ranges[1])
	}
}

func TestRangeHistogramMatchesBinarySearch(t *testing.T) {
	delim := []uint64{10, 20, 30}
	keys := []uint64{5, 10, 11, 25, 30, 31}
	wantRanges := []uint16{0, 0, 1, 2, 2, 3}

	count, ranges := RangeHistogram(keys, delim)
	if len(count) != 4 {
		t.Fatalf("len(count) = %d, want 4", len(count))
	}
	for i := range keys {
		if ranges[i] != wantRanges[i] {
			t.Errorf("ranges[%d] = %d, want %d", i, ranges[i], wantRanges[i])
		}
	}
}

func TestDecidePartitionsSmallFitsCache(t *testing.T) {
	p1, p2 := DecidePartitions(1000, 1)
	if p1 != 360 || p2 != 1 {
		t.Errorf("DecidePartitions(1000,1) = (%d,%d), want (360,1)", p1, p2)
	}
}

func TestDecidePartitionsHugeFallsBackToMax(t *testing.T) {
	p1, p2 := DecidePartitions(10_000_000_000_000, 4)
	if p1 != 1800 || p2 != 1800 {
		t.Errorf("DecidePartitions huge = (%d,%d), want (1800,1800)", p1, p2)
	}
}

func TestDecidePartitionsRespectsNUMAFloor(t *testing.T) {
	p1, _ := DecidePartitions(100, 500)
	if p1 < 500 {
		t.Errorf("DecidePartitions partition count %d below numa node count 500", p1)
	}
}

func TestDistributeBitsSumsToTotal(t *testing.T) {
	pass := DistributeBits(40, 4, 10)
	sum := 0
	for _, p := range pass {
		sum += p
	}
	if sum != 40 {
		t.Errorf("sum(pass) = %d, want %d (numa routing bits are folded into pass[0], not added)", sum, 40)
	}
}

func TestDistributeBitsSinglePassWhenSmall(t *testing.T) {
	pass := DistributeBits(8, 1, 1)
	if len(pass) != 1 {
		t.Fatalf("len(pass) = %d, want 1", len(pass))
	}
	if pass[0] != 8 {
		t.Errorf("pass[0] = %d, want 8", pass[0])
	}
}

func TestCeilLog2(t *testing.T) {
	cases := map[uint64]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 1800: 11}
	for in, want := range cases {
		if got := ceilLog2(in); got != want {
			t.Errorf("ceilLog2(%d) = %d, want %d", in, got, want)
		}
	}
}
