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

// This file holds the scalar (base) implementations of the lane-wise
// operations the sort pipeline needs. When a platform-specific dispatch
// level is selected (see dispatch_amd64.go), these remain correct; only
// their cost model differs. There is no hwygen code generation step here
// (see DESIGN.md) so there is exactly one implementation per op.

// Load creates a vector from the first MaxLanes[T]() elements of src.
func Load[T Integers](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// LoadFull loads exactly MaxLanes[T]() elements; src must have enough room.
// Panics (via slice bounds) if it doesn't, matching the aligned-load
// precondition spec.md places on the buffered partitioner.
func LoadFull[T Integers](src []T) Vec[T] {
	lanes := MaxLanes[T]()
	data := make([]T, lanes)
	copy(data, src[:lanes])
	return Vec[T]{data: data}
}

// Store writes v's lanes into dst.
func Store[T Integers](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// StoreFull writes all of v's lanes into dst; dst must have enough room.
func StoreFull[T Integers](v Vec[T], dst []T) {
	copy(dst[:len(v.data)], v.data)
}

// Set creates a vector with every lane set to value.
func Set[T Integers](value T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with every lane set to zero.
func Zero[T Integers]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

// And performs a lane-wise bitwise AND.
func And[T Integers](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] & b.data[i]
	}
	return Vec[T]{data: out}
}

// Or performs a lane-wise bitwise OR.
func Or[T Integers](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] | b.data[i]
	}
	return Vec[T]{data: out}
}

// ShiftRight performs a lane-wise logical right shift by a constant.
func ShiftRight[T Integers](v Vec[T], bits int) Vec[T] {
	out := make([]T, len(v.data))
	for i, x := range v.data {
		out[i] = x >> uint(bits)
	}
	return Vec[T]{data: out}
}

// ShiftLeft performs a lane-wise left shift by a constant.
func ShiftLeft[T Integers](v Vec[T], bits int) Vec[T] {
	out := make([]T, len(v.data))
	for i, x := range v.data {
		out[i] = x << uint(bits)
	}
	return Vec[T]{data: out}
}

// Equal performs a lane-wise equality compare.
func Equal[T Integers](a, b Vec[T]) Mask[T] { return compare(a, b, func(x, y T) bool { return x == y }) }

// LessThan performs a lane-wise strict less-than compare.
func LessThan[T Integers](a, b Vec[T]) Mask[T] { return compare(a, b, func(x, y T) bool { return x < y }) }

// LessEqual performs a lane-wise less-than-or-equal compare.
func LessEqual[T Integers](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x <= y })
}

// GreaterThan performs a lane-wise strict greater-than compare.
func GreaterThan[T Integers](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x > y })
}

func compare[T Integers](a, b Vec[T], pred func(x, y T) bool) Mask[T] {
	n := min(len(a.data), len(b.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = pred(a.data[i], b.data[i])
	}
	return Mask[T]{bits: bits}
}

// IfThenElse selects a's lane where mask is true, b's otherwise (a masked
// blend — the primitive the cache-resident comb-sort uses for its
// compare-swap step, spec.md §4.8).
func IfThenElse[T Integers](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(mask.bits), min(len(a.data), len(b.data)))
	out := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			out[i] = a.data[i]
		} else {
			out[i] = b.data[i]
		}
	}
	return Vec[T]{data: out}
}

// BlendedStore writes v's lanes into dst only where mask is true, leaving
// the rest of dst untouched.
func BlendedStore[T Integers](v Vec[T], mask Mask[T], dst []T) {
	n := min(len(dst), min(len(mask.bits), len(v.data)))
	for i := range n {
		if mask.bits[i] {
			dst[i] = v.data[i]
		}
	}
}

// GetLane returns the value at lane idx, or the zero value if out of range.
func GetLane[T Integers](v Vec[T], idx int) T {
	if idx < 0 || idx >= len(v.data) {
		var zero T
		return zero
	}
	return v.data[idx]
}
