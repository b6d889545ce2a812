// Copyright 2025 go-numasort Authors. SPDX-License-Identifier: Apache-2.0

package perfcounter

import "testing"

func TestUnknownEventDegradesToNoop(t *testing.T) {
	c := New(Event("not-a-real-event"))
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	v, err := c.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0 {
		t.Errorf("Read() = %d, want 0 for an unavailable counter", v)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
