// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer shared by the whole test binary.
//
//	profile := testutil.UniqueID("profile") // "profile-1", "profile-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// Sequence returns an id generator yielding "prefix-1", "prefix-2",
// and so on. Each call to Sequence starts its own count, so a test
// can predict exactly which ids an operation mints.
//
//	engine := splitter.New(splitter.WithIDGenerator(testutil.Sequence("n")))
func Sequence(prefix string) func() string {
	var counter atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, counter.Add(1))
	}
}
