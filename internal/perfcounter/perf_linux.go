// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package perfcounter

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// typeConfig maps an Event to the perf_event_open (type, config) pair
// for the generic hardware PMU, matching the subset of events the
// original engine's PerfCounter_init registers via libpfm.
var typeConfig = map[Event]struct {
	typ    uint32
	config uint64
}{
	EventCycles:       {unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CPU_CYCLES},
	EventInstructions: {unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_INSTRUCTIONS},
	EventCacheMisses:  {unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_MISSES},
	EventCacheRefs:    {unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_REFERENCES},
}

type perfCounter struct {
	fd int
}

// New opens a hardware performance counter for ev, scoped to the
// calling thread on any CPU, matching PerfCounter_init's per-event
// perf_event_open call in the original engine. Falls back to a no-op
// Counter if the event is unknown or the kernel denies the syscall
// (commonly /proc/sys/kernel/perf_event_paranoid restricting
// unprivileged access), since perf counters are diagnostic, never
// required for correctness.
func New(ev Event) Counter {
	tc, ok := typeConfig[ev]
	if !ok {
		return noop{}
	}
	attr := unix.PerfEventAttr{
		Type:   tc.typ,
		Config: tc.config,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
	}
	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, 0)
	if err != nil {
		return noop{}
	}
	return &perfCounter{fd: fd}
}

func (c *perfCounter) Start() error {
	if err := unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
		return fmt.Errorf("perfcounter: reset: %w", err)
	}
	if err := unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
		return fmt.Errorf("perfcounter: enable: %w", err)
	}
	return nil
}

func (c *perfCounter) Stop() error {
	if err := unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_DISABLE, 0); err != nil {
		return fmt.Errorf("perfcounter: disable: %w", err)
	}
	return nil
}

func (c *perfCounter) Read() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(c.fd, buf[:])
	if err != nil || n != len(buf) {
		return 0, fmt.Errorf("perfcounter: read: %w", err)
	}
	return leUint64(buf[:]), nil
}

func (c *perfCounter) Close() error {
	return unix.Close(c.fd)
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
