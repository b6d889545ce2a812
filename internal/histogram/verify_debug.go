// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

//go:build numasort_debug

package histogram

import "fmt"

// VerifyRangeTags re-derives every range tag via binarySearch and
// compares it against ranges, mirroring the original engine's #ifdef
// BG debug assertion blocks that follow each histogram_* function. Only
// built with -tags numasort_debug; production builds never pay for it.
func VerifyRangeTags(keys []uint64, delim []uint64, ranges []uint16) error {
	for i, k := range keys {
		want := binarySearch(delim, k)
		if int(ranges[i]) != want {
			return fmt.Errorf("histogram: range tag mismatch at %d: got %d, want %d", i, ranges[i], want)
		}
	}
	return nil
}
