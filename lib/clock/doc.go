// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that shows or records the current time (clock widgets, layout
// revision timestamps) takes a Clock instead of calling time.Now, so
// tests can pin the time:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC))
//	widget.Render(instance, c, 20, 3)
//	c.Advance(time.Minute)
//
// The designer redraws on bubbletea ticks rather than timers of its
// own, so only Now is abstracted.
package clock
