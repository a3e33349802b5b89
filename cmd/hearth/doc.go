// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hearth edits and stores split-pane layouts for wall displays. It
// provides an interactive terminal designer (design), scriptable
// layout editing (layout), and profile and revision management backed
// by a local SQLite database (profile, revision).
package main
