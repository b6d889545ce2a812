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

import (
	"os"
	"unsafe"
)

// DispatchLevel represents the SIMD instruction set currently selected.
type DispatchLevel int

const (
	// DispatchScalar: no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota
	// DispatchAVX2: 256-bit x86-64 SIMD.
	DispatchAVX2
	// DispatchAVX512: 512-bit x86-64 SIMD.
	DispatchAVX512
	// DispatchNEON: 128-bit ARM SIMD.
	DispatchNEON
)

func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is set by init() in dispatch_*.go for the build's GOARCH.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for currentLevel.
// DispatchScalar uses 16 so that lane counts stay sane in scalar mode.
var currentWidth = 16

// CurrentLevel returns the detected dispatch level for this process.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentName returns the human-readable name of the dispatch level.
func CurrentName() string { return currentLevel.String() }

// CurrentWidth returns the SIMD register width in bytes.
func CurrentWidth() int { return currentWidth }

// noSimdEnv reports whether SIMD dispatch is disabled via environment.
// Mirrors the teacher's HWY_NO_SIMD escape hatch so the scalar fallback
// can always be forced for debugging.
func noSimdEnv() bool {
	return os.Getenv("NUMASORT_NO_SIMD") != ""
}

// MaxLanes returns the number of lanes of type T that fit in the current
// vector width.
func MaxLanes[T Integers]() int {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return 1
	}
	lanes := currentWidth / elemSize
	if lanes < 1 {
		lanes = 1
	}
	return lanes
}
