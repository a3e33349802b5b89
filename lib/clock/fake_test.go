// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	c := Fake(start)
	if !c.Now().Equal(start) {
		t.Fatalf("Now = %v, want %v", c.Now(), start)
	}

	c.Advance(90 * time.Second)
	if want := start.Add(90 * time.Second); !c.Now().Equal(want) {
		t.Errorf("Now after Advance = %v, want %v", c.Now(), want)
	}

	c.Advance(-time.Hour)
	if want := start.Add(90 * time.Second); !c.Now().Equal(want) {
		t.Errorf("negative Advance moved the clock to %v", c.Now())
	}

	later := start.Add(24 * time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("Now after Set = %v, want %v", c.Now(), later)
	}
}

func TestRealIsMonotonicEnough(t *testing.T) {
	c := Real()
	first := c.Now()
	if second := c.Now(); second.Before(first) {
		t.Errorf("Real clock went backwards: %v then %v", first, second)
	}
}
