// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Hearth packages.
//
// [Sequence] returns a deterministic id generator for injecting into
// the splitter engine, so tests can name the sections and slots an
// operation creates. [UniqueID] generates process-wide unique
// identifiers for tests that share state (profile names in a shared
// database).
//
// [DatabasePath] returns a fresh SQLite path inside the test's
// temporary directory. [LayoutFile] writes a layout document to a
// temporary file.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Hearth-internal dependencies.
package testutil
