// Command numasortbench drives the numasort engine over synthetic or
// file-loaded key data and reports per-phase timings.
//
// Usage:
//
//	numasortbench [flags] tuples_millions threads numa_nodes bits interleaved preallocated [theta|filename]
//
// tuples_millions, threads, numa_nodes and bits (1..64) size the run;
// interleaved and preallocated are 0|1 switches. interleaved sets
// Config.Interleaved. preallocated makes the driver read every input key
// once before Sort starts; Sort allocates its own output buffers inside
// the timed run either way. The optional trailing argument is either a Zipfian
// skew parameter theta (a float) for synthetic key generation, or a path
// to a binary key file (internal/loader's fixed-width uint64 format) to
// load keys from instead of generating them.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/ajroetker/go-numasort/internal/loader"
	"github.com/ajroetker/go-numasort/numasort"
)

var (
	variantFlag = flag.String("variant", "range", "orchestration variant: range or lsb")
	verifyFlag  = flag.Bool("verify", true, "run Verify against the sorted result before exiting")
	seedFlag    = flag.Int64("seed", 0, "PRNG seed for synthetic key generation (0 picks one from the current time)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] tuples_millions threads numa_nodes bits interleaved preallocated [theta|filename]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "numasortbench: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 6 || len(args) > 7 {
		flag.Usage()
		return fmt.Errorf("expected 6 or 7 positional arguments, got %d", len(args))
	}

	tuplesMillions, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("tuples_millions: %w", err)
	}
	threads, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("threads: %w", err)
	}
	numaNodes, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("numa_nodes: %w", err)
	}
	bits, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("bits: %w", err)
	}
	interleaved, err := parseBoolFlag(args[4], "interleaved")
	if err != nil {
		return err
	}
	preallocated, err := parseBoolFlag(args[5], "preallocated")
	if err != nil {
		return err
	}

	variant := numasort.VariantRange
	if *variantFlag == "lsb" {
		variant = numasort.VariantLSB
	} else if *variantFlag != "range" {
		return fmt.Errorf("unknown -variant %q (want range or lsb)", *variantFlag)
	}

	cfg := numasort.Config{
		Threads:     threads,
		NUMANodes:   numaNodes,
		Bits:        bits,
		Interleaved: interleaved,
		Variant:     variant,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	totalTuples := uint64(tuplesMillions) * 1000000
	var shards []numasort.NodeShard
	if len(args) == 7 {
		shards, err = buildShardsFromArg(args[6], totalTuples, numaNodes, bits, seed)
	} else {
		shards = buildUniformShards(totalTuples, numaNodes, bits, seed)
	}
	if err != nil {
		return err
	}

	if preallocated {
		// Read every input key once up front. This touches only the
		// input shards; Sort's own output and scratch buffers are still
		// allocated inside Sort.
		for _, s := range shards {
			for i := range s.Keys {
				_ = s.Keys[i]
			}
		}
	}

	result, timings, err := numasort.Sort(cfg, shards)
	if err != nil {
		return fmt.Errorf("sort: %w", err)
	}

	if *verifyFlag {
		if err := numasort.Verify(shards, result); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}

	printReport(cfg, totalTuples, timings)
	return nil
}

func parseBoolFlag(s, name string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%s must be 0 or 1, got %q", name, s)
	}
}

// buildUniformShards generates totalTuples keys uniformly at random over
// [0, 2^bits), split evenly across numaNodes shards, with sequential
// payloads seeded so the checksum Verify derives is reproducible.
func buildUniformShards(totalTuples uint64, numaNodes, bits int, seed int64) []numasort.NodeShard {
	mask := uint64(1)<<uint(bits) - 1
	if bits >= 64 {
		mask = ^uint64(0)
	}
	shards := make([]numasort.NodeShard, numaNodes)
	per := totalTuples / uint64(numaNodes)
	var payloadCounter uint64
	for n := range shards {
		size := per
		if n == numaNodes-1 {
			size = totalTuples - per*uint64(numaNodes-1)
		}
		r := rand.New(rand.NewSource(seed + int64(n)))
		keys := make([]uint64, size)
		payloads := make([]uint64, size)
		for i := range keys {
			keys[i] = uint64(r.Uint64()) & mask
			payloads[i] = payloadCounter
			payloadCounter++
		}
		shards[n] = numasort.NodeShard{Keys: keys, Payloads: payloads}
	}
	return shards
}

// buildZipfianShards generates keys skewed by a Zipfian distribution
// with the given theta, matching the CLI's optional `theta` argument.
func buildZipfianShards(totalTuples uint64, numaNodes, bits int, theta float64, seed int64) []numasort.NodeShard {
	mask := uint64(1)<<uint(bits) - 1
	if bits >= 64 {
		mask = ^uint64(0)
	}
	shards := make([]numasort.NodeShard, numaNodes)
	per := totalTuples / uint64(numaNodes)
	var payloadCounter uint64
	for n := range shards {
		size := per
		if n == numaNodes-1 {
			size = totalTuples - per*uint64(numaNodes-1)
		}
		s := 1.0 + theta
		if s <= 1.0 {
			s = 1.0 + 1e-6
		}
		r := rand.New(rand.NewSource(seed + int64(n)))
		z := rand.NewZipf(r, s, 1.0, mask)
		keys := make([]uint64, size)
		payloads := make([]uint64, size)
		for i := range keys {
			keys[i] = z.Uint64() & mask
			payloads[i] = payloadCounter
			payloadCounter++
		}
		shards[n] = numasort.NodeShard{Keys: keys, Payloads: payloads}
	}
	return shards
}

// buildShardsFromArg disambiguates the CLI's trailing
// `[theta|filename]` argument: if it parses as a float it drives
// buildZipfianShards, otherwise it names a key file loaded via
// internal/loader and split evenly across shards.
func buildShardsFromArg(arg string, totalTuples uint64, numaNodes, bits int, seed int64) ([]numasort.NodeShard, error) {
	if theta, err := strconv.ParseFloat(arg, 64); err == nil {
		return buildZipfianShards(totalTuples, numaNodes, bits, theta, seed), nil
	}

	allKeys := make([]uint64, totalTuples)
	if _, err := loader.ReadKeyFile(arg, allKeys); err != nil {
		return nil, fmt.Errorf("loading key file %q: %w", arg, err)
	}

	shards := make([]numasort.NodeShard, numaNodes)
	per := totalTuples / uint64(numaNodes)
	var offset uint64
	var payloadCounter uint64
	for n := range shards {
		size := per
		if n == numaNodes-1 {
			size = totalTuples - per*uint64(numaNodes-1)
		}
		keys := append([]uint64(nil), allKeys[offset:offset+size]...)
		payloads := make([]uint64, size)
		for i := range payloads {
			payloads[i] = payloadCounter
			payloadCounter++
		}
		shards[n] = numasort.NodeShard{Keys: keys, Payloads: payloads}
		offset += size
	}
	return shards, nil
}

func printReport(cfg numasort.Config, totalTuples uint64, t numasort.Timings) {
	fmt.Printf("variant=%s tuples=%d threads=%d numa_nodes=%d bits=%d interleaved=%v\n",
		cfg.Variant, totalTuples, cfg.Threads, cfg.NUMANodes, cfg.Bits, cfg.Interleaved)
	fmt.Printf("  sample:     %v\n", t.Sample)
	fmt.Printf("  histogram1: %v\n", t.Histogram1)
	fmt.Printf("  partition1: %v\n", t.Partition1)
	fmt.Printf("  shuffle:    %v\n", t.Shuffle)
	fmt.Printf("  histogram2: %v\n", t.Histogram2)
	fmt.Printf("  partition2: %v\n", t.Partition2)
	fmt.Printf("  sort:       %v\n", t.Sort)
}
