// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

// Package loader reads pre-generated key files from disk into NUMA-node
// local buffers, replacing the original engine's read_from_file
// (spec.md §6, CLI positional argument "filename" mode).
package loader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrIO wraps any file or read failure while loading keys.
var ErrIO = errors.New("loader: i/o error")

// readChunk matches the original's 4096-uint64 fread() batches.
const readChunk = 4096

// ReadKeyFile fills dst with little-endian uint64 keys read from path,
// returning a running checksum (the sum of every key read) the way the
// original engine accumulates `checksum` in read_from_file. The file is
// read by the calling thread as it is; ReadKeyFile does no CPU or NUMA
// binding of its own.
func ReadKeyFile(path string, dst []uint64) (checksum uint64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, readChunk*8)
	remaining := dst
	buf := make([]byte, readChunk*8)
	for len(remaining) > 0 {
		want := len(remaining)
		if want > readChunk {
			want = readChunk
		}
		n, err := io.ReadFull(r, buf[:want*8])
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return checksum, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
		}
		keysRead := n / 8
		for i := 0; i < keysRead; i++ {
			k := binary.LittleEndian.Uint64(buf[i*8:])
			remaining[i] = k
			checksum += k
		}
		if keysRead == 0 {
			return checksum, fmt.Errorf("%w: %s exhausted before filling destination", ErrIO, path)
		}
		remaining = remaining[keysRead:]
	}
	return checksum, nil
}
