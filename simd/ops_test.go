// Copyright 2025 go-numasort Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package simd

import "testing"

func TestLoadStoreRoundTrip(t *testing.T) {
	data := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	v := Load(data)
	if v.NumLanes() == 0 {
		t.Fatal("Load created empty vector")
	}
	out := make([]uint64, v.NumLanes())
	Store(v, out)
	for i := range out {
		if out[i] != data[i] {
			t.Errorf("lane %d: got %v, want %v", i, out[i], data[i])
		}
	}
}

func TestSetZero(t *testing.T) {
	v := Set[uint64](42)
	for i := 0; i < v.NumLanes(); i++ {
		if GetLane(v, i) != 42 {
			t.Errorf("Set: lane %d: got %v, want 42", i, GetLane(v, i))
		}
	}
	z := Zero[uint64]()
	for i := 0; i < z.NumLanes(); i++ {
		if GetLane(z, i) != 0 {
			t.Errorf("Zero: lane %d: got %v, want 0", i, GetLane(z, i))
		}
	}
}

func TestAndShift(t *testing.T) {
	v := Set[uint64](0xFF00FF00FF00FF00)
	masked := And(v, Set[uint64](0xFF))
	for i := 0; i < masked.NumLanes(); i++ {
		if GetLane(masked, i) != 0 {
			t.Errorf("And: lane %d: got %#x, want 0", i, GetLane(masked, i))
		}
	}

	shifted := ShiftRight(Set[uint64](1<<8), 8)
	for i := 0; i < shifted.NumLanes(); i++ {
		if GetLane(shifted, i) != 1 {
			t.Errorf("ShiftRight: lane %d: got %v, want 1", i, GetLane(shifted, i))
		}
	}
}

func TestCompareAndBlend(t *testing.T) {
	a := Load([]uint64{1, 3, 5, 9})
	b := Load([]uint64{2, 3, 4, 8})

	lt := LessThan(a, b)
	if lt.GetBit(0) != true || lt.GetBit(1) != false || lt.GetBit(2) != false || lt.GetBit(3) != false {
		t.Fatalf("LessThan mask wrong: %v", lt.bits)
	}

	eq := Equal(a, b)
	if !eq.GetBit(1) {
		t.Fatal("Equal: expected lane 1 to match")
	}

	blended := IfThenElse(lt, a, b)
	if GetLane(blended, 0) != 1 || GetLane(blended, 1) != 3 {
		t.Fatalf("IfThenElse: got %v", blended.Data())
	}
}

func TestInterleave(t *testing.T) {
	aos := []uint64{10, 100, 20, 200, 30, 300, 40, 400}
	keys, vals := LoadInterleaved2(aos)
	wantK := []uint64{10, 20, 30, 40}
	wantV := []uint64{100, 200, 300, 400}
	n := min(keys.NumLanes(), len(wantK))
	for i := 0; i < n; i++ {
		if GetLane(keys, i) != wantK[i] || GetLane(vals, i) != wantV[i] {
			t.Fatalf("LoadInterleaved2: lane %d: got (%v,%v) want (%v,%v)",
				i, GetLane(keys, i), GetLane(vals, i), wantK[i], wantV[i])
		}
	}

	out := make([]uint64, len(aos))
	StoreInterleaved2(keys, vals, out)
	for i := 0; i < n*2; i++ {
		if out[i] != aos[i] {
			t.Fatalf("StoreInterleaved2 round-trip: index %d: got %v want %v", i, out[i], aos[i])
		}
	}
}

func TestProcessWithTail(t *testing.T) {
	data := make([]uint64, MaxLanes[uint64]()*2+3)
	for i := range data {
		data[i] = uint64(i)
	}
	var seen []uint64
	ProcessWithTail[uint64](len(data),
		func(offset int) {
			v := LoadFull[uint64](data[offset:])
			for i := 0; i < v.NumLanes(); i++ {
				seen = append(seen, GetLane(v, i))
			}
		},
		func(offset, count int) {
			mask := TailMask[uint64](count)
			for i := 0; i < count; i++ {
				if !mask.GetBit(i) {
					t.Fatalf("tail mask should be active for lane %d", i)
				}
				seen = append(seen, data[offset+i])
			}
		},
	)
	if len(seen) != len(data) {
		t.Fatalf("ProcessWithTail visited %d elements, want %d", len(seen), len(data))
	}
	for i, v := range seen {
		if v != data[i] {
			t.Fatalf("ProcessWithTail order mismatch at %d: got %v want %v", i, v, data[i])
		}
	}
}
