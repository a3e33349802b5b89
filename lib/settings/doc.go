// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings persists layout trees per profile.
//
// A profile is a named layout, typically one per display ("kitchen",
// "hallway"). The current tree of a profile is stored as the JSON
// document users import and export. Every save that changes the tree
// also appends a revision: the tree in deterministic CBOR, compressed
// with zstd or lz4, keyed by a per-profile sequence number and
// identified by the blake3 hash of its CBOR bytes. Saving an
// unchanged tree does not add a revision.
//
// Loading never fails on bad data. A profile with no row, or whose
// stored document no longer validates, loads as the default tree, and
// [Layout.Recovered] tells the caller which case applied.
package settings
