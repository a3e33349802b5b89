// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the hearth binary.
//
// A [Command] has a name, an optional [pflag.FlagSet] factory, nested
// [Command.Subcommands], and a Run function. The tree is assembled in
// cmd/hearth/commands and dispatched with [Command.Execute], which
// parses flags, routes subcommands, and prints help with examples.
// Unknown commands and flags get a "did you mean" suggestion when the
// edit distance to a known name is at most 3.
//
// Failures carry a category ([Validation], [NotFound], [Rejected],
// [Internal]) that main turns into the exit code. [ExitError] exits
// non-zero without printing anything more. [JSONOutput] adds a --json
// flag, and [NewCommandLogger] and [NewFileLogger] build the slog
// loggers commands receive.
package cli
