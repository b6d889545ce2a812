// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package numasort

import "fmt"

// Verify cross-checks a Result against the original input shards,
// replacing the original engine's check/check_thread routines (which
// scan each thread's output range asserting non-decreasing order and
// accumulate a running checksum to compare against the pre-sort total)
// with a single-pass Go equivalent returning an error instead of
// aborting the process.
//
// Verify checks, in order: every shard's key count matches its input
// counterpart, keys are non-decreasing within each shard, each shard's
// minimum key is >= the previous shard's maximum key (cross-node
// ordering), and the aggregate checksum over all output keys equals
// the checksum over all input keys.
func Verify(input []NodeShard, result Result) error {
	if len(result.Shards) != len(input) {
		return fmt.Errorf("%w: result has %d shards, input has %d", ErrInconsistency, len(result.Shards), len(input))
	}

	var inputTotal, inputChecksum uint64
	for _, s := range input {
		inputTotal += uint64(len(s.Keys))
		for _, k := range s.Keys {
			inputChecksum += k
		}
	}

	var outputTotal uint64
	var prevMax uint64
	havePrevMax := false
	for n, s := range result.Shards {
		outputTotal += uint64(len(s.Keys))
		if len(s.Keys) != len(s.Payloads) {
			return fmt.Errorf("%w: shard %d has %d keys but %d payloads", ErrInconsistency, n, len(s.Keys), len(s.Payloads))
		}
		if len(s.Keys) == 0 {
			continue
		}
		if havePrevMax && s.Keys[0] < prevMax {
			return fmt.Errorf("%w: shard %d's minimum key %d is less than shard %d's maximum key %d",
				ErrInconsistency, n, s.Keys[0], n-1, prevMax)
		}
		for i := 1; i < len(s.Keys); i++ {
			if s.Keys[i] < s.Keys[i-1] {
				return fmt.Errorf("%w: shard %d is not sorted at index %d (%d < %d)",
					ErrInconsistency, n, i, s.Keys[i], s.Keys[i-1])
			}
		}
		prevMax = s.Keys[len(s.Keys)-1]
		havePrevMax = true
	}

	if outputTotal != inputTotal {
		return fmt.Errorf("%w: output has %d tuples, input has %d", ErrInconsistency, outputTotal, inputTotal)
	}
	if result.Checksum != inputChecksum {
		return fmt.Errorf("%w: result checksum %d does not match input checksum %d", ErrInconsistency, result.Checksum, inputChecksum)
	}
	return nil
}
