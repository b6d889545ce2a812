package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseBoolFlag(t *testing.T) {
	if v, err := parseBoolFlag("0", "x"); err != nil || v {
		t.Fatalf("parseBoolFlag(0) = %v, %v", v, err)
	}
	if v, err := parseBoolFlag("1", "x"); err != nil || !v {
		t.Fatalf("parseBoolFlag(1) = %v, %v", v, err)
	}
	if _, err := parseBoolFlag("2", "x"); err == nil {
		t.Fatal("expected an error for an out-of-range bool flag value")
	}
}

func TestBuildUniformShardsRespectsBitWidth(t *testing.T) {
	shards := buildUniformShards(1000, 2, 8, 42)
	if len(shards) != 2 {
		t.Fatalf("expected 2 shards, got %d", len(shards))
	}
	var total int
	for _, s := range shards {
		total += len(s.Keys)
		for _, k := range s.Keys {
			if k > 0xff {
				t.Fatalf("key %d exceeds 8-bit mask", k)
			}
		}
	}
	if total != 1000 {
		t.Fatalf("expected 1000 total tuples, got %d", total)
	}
}

func TestBuildShardsFromArgTheta(t *testing.T) {
	shards, err := buildShardsFromArg("1.5", 500, 1, 16, 7)
	if err != nil {
		t.Fatalf("buildShardsFromArg: %v", err)
	}
	if len(shards[0].Keys) != 500 {
		t.Fatalf("expected 500 keys, got %d", len(shards[0].Keys))
	}
}

func TestBuildShardsFromArgFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	keys := []uint64{10, 20, 30, 40}
	buf := make([]byte, 8*len(keys))
	for i, k := range keys {
		for b := 0; b < 8; b++ {
			buf[i*8+b] = byte(k >> (8 * b))
		}
	}
	if _, err := f.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	shards, err := buildShardsFromArg(path, 4, 2, 64, 1)
	if err != nil {
		t.Fatalf("buildShardsFromArg: %v", err)
	}
	var total int
	for _, s := range shards {
		total += len(s.Keys)
	}
	if total != 4 {
		t.Fatalf("expected 4 total tuples, got %d", total)
	}
}
