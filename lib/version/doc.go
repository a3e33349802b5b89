// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of the hearth binary.
//
// Release builds inject [GitCommit], [GitDirty], [BuildTime], and
// [Version] with -ldflags -X. Builds without ldflags fall back to the
// VCS stamp the Go toolchain records in the binary, so `go install`
// builds still print a commit.
package version
