// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Hearth's standard CBOR encoding configuration.
//
// Hearth uses two serialization formats with a clear boundary:
//
//   - JSON for documents people read or author: the current layout of
//     each profile, layout import/export files, the widget registry.
//   - CBOR for internal snapshots: the revision history kept by the
//     settings store.
//
// Revisions are hashed to detect repeated saves of an unchanged tree,
// so the encoding must be deterministic: the same tree always yields
// the same bytes. Types here rely on fxamacker's fallback to json
// struct tags, so the layout types need no CBOR-specific tags.
package codec
