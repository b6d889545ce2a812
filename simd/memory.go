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

// LoadInterleaved2 loads interleaved (key, payload) pairs and deinterleaves
// them into two vectors, converting Array-of-Structures tuple storage into
// Structure-of-Arrays form for vector compares.
//
// Input memory layout:  [k0, v0, k1, v1, k2, v2, k3, v3, ...]
// Output:                keys = [k0, k1, k2, k3, ...], vals = [v0, v1, v2, v3, ...]
func LoadInterleaved2[T Integers](src []T) (keys, vals Vec[T]) {
	n := MaxLanes[T]()
	ks := make([]T, n)
	vs := make([]T, n)
	srcIdx := 0
	for i := 0; i < n && srcIdx+1 < len(src); i++ {
		ks[i] = src[srcIdx]
		vs[i] = src[srcIdx+1]
		srcIdx += 2
	}
	return Vec[T]{data: ks}, Vec[T]{data: vs}
}

// StoreInterleaved2 is the inverse of LoadInterleaved2: it writes two
// vectors out as interleaved (key, payload) pairs.
func StoreInterleaved2[T Integers](keys, vals Vec[T], dst []T) {
	n := min(len(keys.data), len(vals.data))
	dstIdx := 0
	for i := 0; i < n && dstIdx+1 < len(dst); i++ {
		dst[dstIdx] = keys.data[i]
		dst[dstIdx+1] = vals.data[i]
		dstIdx += 2
	}
}

// StoreNonTemporal writes v's lanes to dst the same way Store does.
//
// Go has no portable non-temporal-store intrinsic (no archsimd MOVNTI/
// MOVNTDQ equivalent reachable without cgo or assembly), so in every
// dispatch mode this is a plain cached store. It exists as a distinct,
// explicitly-named entry point — not folded into Store — so that
// internal/partition and internal/shuffle, which are structured around
// the "flush exactly one cache-line pair, never read-modify-write" shape
// spec.md §4.5 and §9 require for real non-temporal stores, keep that
// shape even though this build can't bypass the cache. Swapping in a real
// non-temporal store later (via a GOEXPERIMENT=simd archsimd backend) is a
// one-line change confined to this function.
func StoreNonTemporal[T Integers](v Vec[T], dst []T) {
	StoreFull(v, dst)
}

// Undefined returns a zero-initialized vector. Use where the initial
// value doesn't matter (it will be fully overwritten before being read) —
// Go has no uninitialized-register equivalent, so this is the honest
// substitute.
func Undefined[T Integers]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}
