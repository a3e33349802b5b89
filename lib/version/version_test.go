// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	original := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = original })
}

func setInjected(t *testing.T, commit, dirty, built string) {
	t.Helper()
	previousCommit, previousDirty, previousBuilt := GitCommit, GitDirty, BuildTime
	GitCommit, GitDirty, BuildTime = commit, dirty, built
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = previousCommit, previousDirty, previousBuilt })
}

func TestInfoUsesInjectedValues(t *testing.T) {
	setInjected(t, "abc1234", "true", "2026-05-01T10:00:00Z")
	stubBuildInfo(t, nil)

	want := Version + " (abc1234-dirty, 2026-05-01T10:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoFallsBackToVCSStamp(t *testing.T) {
	setInjected(t, "unknown", "false", "unknown")
	stubBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "false"},
		{Key: "vcs.time", Value: "2026-04-02T08:30:00Z"},
	}})

	want := Version + " (0123456, 2026-04-02T08:30:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoWithoutAnyStamp(t *testing.T) {
	setInjected(t, "unknown", "false", "unknown")
	stubBuildInfo(t, nil)

	if got, want := Info(), Version+" (unknown, unknown)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	if !strings.Contains(Full(), "Platform: ") {
		t.Errorf("Full() = %q, missing platform line", Full())
	}
}
