// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package topology

import (
	"strconv"
	"strings"
)

// parseCPUList parses a Linux-style cpulist string such as "0-3,8,10-11"
// into the list of individual CPU indices it denotes.
func parseCPUList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			loN, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, err
			}
			hiN, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, err
			}
			for c := loN; c <= hiN; c++ {
				out = append(out, c)
			}
		} else {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}
