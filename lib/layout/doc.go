// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout defines the recursive split-pane tree behind the
// kiosk dashboard designer.
//
// A [Section] divides its area among an ordered list of [Child]
// values along one [Axis]. Each child carries a relative flex weight
// and one of three contents: an empty slot, a widget reference, or a
// nested section. The tree has no parent pointers and no sharing:
// every section owns its children, and mutation (package splitter)
// rebuilds the path from the root to the changed node instead of
// editing in place. A tree value handed out by this package or by the
// splitter must be treated as immutable.
//
// Invariants that hold for every tree accepted by [Validate]:
//
//   - every section has at least one child;
//   - every child's flex is finite and at least the minimum flex;
//   - flex is relative to siblings only, with no global sum;
//   - ids are non-empty and unique across the whole tree.
//
// Widget references are not checked against any registry. A widget id
// that no longer resolves renders as empty and stays in the tree.
//
// The stored form is JSON (optionally with JSONC comments) mirroring
// the Go types. [Load] is the recovery path for documents read from a
// settings store: anything that fails validation is replaced by
// [Default] and reported through the returned flag, never as an error.
package layout
