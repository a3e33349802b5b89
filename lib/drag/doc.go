// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package drag turns pointer movement on a splitter boundary into
// resize operations on a layout tree.
//
// A [Controller] is either idle or dragging. Pointer-down on a
// boundary creates a [Session] recording the boundary and the starting
// coordinate along the boundary's axis. Each pointer move computes the
// delta from the last coordinate and applies one resize tick. A tick
// that would push either pane below the flex floor is dropped; the
// drag continues. Pointer-up ends the session wherever the pointer is,
// and teardown of the owning component must call [Controller.Cancel]
// so no session outlives it.
//
// The controller holds only the session, never the tree: callers pass
// the current tree into Move and keep the tree it returns.
package drag
