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

// Package simd provides a portable SIMD abstraction for the tuple
// (key, payload) operations the sort engine needs: wide compares, masked
// blends, and AoS<->SoA loads over uint64/uint16 lanes.
//
// It follows the same dispatch philosophy as go-highway's hwy package:
// write once against Vec[T]/Mask[T], and let runtime CPU detection pick
// the best available width. Only the operations the sort pipeline
// exercises are kept; this is not a general-purpose SIMD library.
package simd

// Integers is a constraint for the integer lane types the pipeline uses:
// uint64 keys/payloads, uint16 partition tags, uint32 scratch counters.
type Integers interface {
	~uint16 | ~uint32 | ~uint64 | ~int32 | ~int64
}

// Vec is a portable vector handle. In scalar (base) mode it wraps a slice;
// SIMD-dispatched modes would replace the field with an architecture
// native register type behind the same method set.
type Vec[T Integers] struct {
	data []T
}

// NumLanes returns the number of lanes in this vector.
func (v Vec[T]) NumLanes() int { return len(v.data) }

// Data exposes the underlying slice. Intended for tests and debugging;
// hot paths should use Load/Store instead of touching this directly.
func (v Vec[T]) Data() []T { return v.data }

// Mask represents the result of a lane-wise comparison.
type Mask[T Integers] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int { return len(m.bits) }

// AllTrue reports whether every lane in the mask is active.
func (m Mask[T]) AllTrue() bool {
	for _, b := range m.bits {
		if !b {
			return false
		}
	}
	return true
}

// AllFalse reports whether every lane in the mask is inactive.
func (m Mask[T]) AllFalse() bool {
	for _, b := range m.bits {
		if b {
			return false
		}
	}
	return true
}

// AnyTrue reports whether at least one lane is active.
func (m Mask[T]) AnyTrue() bool {
	for _, b := range m.bits {
		if b {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes.
func (m Mask[T]) CountTrue() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// FirstTrue returns the index of the first active lane, or -1.
func (m Mask[T]) FirstTrue() int {
	for i, b := range m.bits {
		if b {
			return i
		}
	}
	return -1
}

// GetBit reports whether lane i is active; out-of-range lanes read false.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
