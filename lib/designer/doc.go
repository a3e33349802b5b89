// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package designer connects layout trees to a terminal screen. It
// covers three layers, each usable without the next:
//
//   - Geometry: [Compute] turns a tree and a cell rectangle into pane
//     and splitter-handle rectangles that tile the area exactly, with
//     PaneAt and BoundaryAt for pointer routing.
//   - Intents: [Editor.Apply] takes a user gesture (split, remove,
//     assign, insert, distribute, drag start/move/end) and returns the
//     new tree. [Editor.Affordances] lists only the gestures that would
//     succeed on a pane, so a renderer never offers a doomed action.
//   - Model: a bubbletea program that draws the tree with lipgloss,
//     routes keys and mouse events to intents, and keeps an undo
//     stack of prior trees.
//
// Trees are immutable. Undo is a stack of earlier roots; unchanged
// subtrees are shared between them.
package designer
