// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface pieces for
// hearth's interactive designer. Built on bubbletea and lipgloss, it
// holds the color theme, floating dropdown menus, ANSI-aware overlay
// splicing, and fuzzy filtering for pick lists.
//
// The designer owns layout state and geometry. This package only knows
// how to draw and filter strings.
package tui
