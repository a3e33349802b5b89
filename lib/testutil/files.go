// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DatabasePath returns a path for a SQLite database inside the test's
// temporary directory. The file does not exist yet; the directory is
// removed when the test completes.
func DatabasePath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "hearth.db")
}

// LayoutFile writes content to a file named name in a temporary
// directory and returns its path.
func LayoutFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
