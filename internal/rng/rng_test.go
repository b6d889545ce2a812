// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package rng

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if av, bv := a.Next(), b.Next(); av != bv {
			t.Fatalf("stream diverged at step %d: %d != %d", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("streams from different seeds collided %d/100 times", same)
	}
}

func TestIndexInRange(t *testing.T) {
	g := New(7)
	for i := 0; i < 10000; i++ {
		v := g.Index(17)
		if v < 0 || v >= 17 {
			t.Fatalf("Index(17) = %d, out of range", v)
		}
	}
}

func TestIndexZeroIsSafe(t *testing.T) {
	g := New(7)
	if v := g.Index(0); v != 0 {
		t.Errorf("Index(0) = %d, want 0", v)
	}
}
