// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import "errors"

// Structural failures. The tree returned alongside these is the
// unchanged input.
var (
	ErrSectionNotFound = errors.New("section not found")
	ErrChildNotFound   = errors.New("child not found in section")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrNotSlot         = errors.New("target holds a nested section, not a slot")
	ErrOnlyChild       = errors.New("cannot remove the only child of a section")
	ErrWidgetID        = errors.New("widget id is required")
	ErrInvalidAxis     = errors.New("axis must be row or column")
	ErrTooDeep         = errors.New("split would exceed maximum nesting depth")
)

// Resize failures.
var (
	// ErrBelowMinFlex reports a split or resize whose result would put
	// a child under the flex floor. For resize ticks during a drag this
	// is expected and callers ignore it.
	ErrBelowMinFlex = errors.New("result would fall below minimum flex")

	// ErrChildIndex reports a resize pair that does not exist.
	ErrChildIndex = errors.New("child index out of range for resize")

	// ErrContainerSize reports a non-positive container length.
	ErrContainerSize = errors.New("container size must be positive")
)
