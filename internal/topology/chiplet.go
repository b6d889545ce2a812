// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package topology

// Default chiplet block/group sizes, matching calculatePattern's constants
// in the original engine: a 128-core block is carved into 16-core groups,
// and logical core n within a block is remapped so that consecutive
// logical indices land on distinct chiplets before wrapping back to the
// first chiplet's next core (spec.md §4.1, "Chiplet-aware permutation").
const (
	DefaultBlockSize = 128
	DefaultGroupSize = 16
)

// ChipletPermute maps a logical core index n to the physical core index
// that spreads consecutive logical indices across chiplets, using the
// given block and group size. Pass DefaultBlockSize/DefaultGroupSize for
// the original engine's layout.
func ChipletPermute(n, blockSize, groupSize int) int {
	base := (n / blockSize) * blockSize
	offset := n % blockSize
	return base + offset/groupSize + (offset%groupSize)*(blockSize/groupSize)
}
