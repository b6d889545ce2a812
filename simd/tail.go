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

// TailMask creates a mask with the first count lanes active. Used to cap
// a vector op to the unaligned remainder of a loop (spec.md §8: "Unaligned
// head and tail of every SIMD loop processed by scalar fall-backs with
// identical semantics" — TailMask is the mask-based alternative to a
// separate scalar loop where a masked op is cheaper to express).
func TailMask[T Integers](count int) Mask[T] {
	maxLanes := MaxLanes[T]()
	if count < 0 {
		count = 0
	}
	if count > maxLanes {
		count = maxLanes
	}
	bits := make([]bool, maxLanes)
	for i := 0; i < count; i++ {
		bits[i] = true
	}
	return Mask[T]{bits: bits}
}

// ProcessWithTail calls fullFn once per full vector of size, then tailFn
// once for the remainder if size is not a multiple of the vector width.
// This is the head/body/tail loop shape spec.md §9 calls for in place of
// the original's goto-driven unaligned prefix/suffix handling.
func ProcessWithTail[T Integers](size int, fullFn func(offset int), tailFn func(offset, count int)) {
	lanes := MaxLanes[T]()
	full := size / lanes
	for i := range full {
		fullFn(i * lanes)
	}
	if rem := size % lanes; rem > 0 {
		tailFn(full*lanes, rem)
	}
}

// AlignedSize rounds size up to the next multiple of the vector width.
func AlignedSize[T Integers](size int) int {
	lanes := MaxLanes[T]()
	return ((size + lanes - 1) / lanes) * lanes
}

// IsAligned reports whether size is a multiple of the vector width.
func IsAligned[T Integers](size int) bool {
	return size%MaxLanes[T]() == 0
}
