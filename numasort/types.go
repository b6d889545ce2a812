// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package numasort

import "time"

// NodeShard is one NUMA node's share of the (key, payload) tuples to
// sort. Keys and Payloads must have equal length; index i in one names
// the same tuple as index i in the other (spec.md §2, Tuple).
type NodeShard struct {
	Keys     []uint64
	Payloads []uint64
}

// Timings records how long Sort spent in each phase. Most fields are
// the wall-clock time of the whole phase; Histogram2 and Partition2
// (range variant) are the per-node totals averaged across nodes. Alloc
// is never set by Sort and stays zero.
type Timings struct {
	Alloc      time.Duration
	Sample     time.Duration
	Histogram1 time.Duration
	Partition1 time.Duration
	Shuffle    time.Duration
	Histogram2 time.Duration
	Partition2 time.Duration
	Sort       time.Duration
}

// Result is Sort's output: one sorted shard per NUMA node, in
// increasing key order both within and across nodes (node n+1's
// smallest key is >= node n's largest), plus the aggregate checksum
// Verify cross-checks against the input.
type Result struct {
	Shards   []NodeShard
	Checksum uint64
}
