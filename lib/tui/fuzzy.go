// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching one candidate against a
// pattern. Positions are rune offsets into the candidate and are nil
// when the pattern is empty.
type FuzzyResult struct {
	Matched   bool
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 algorithm over text. Matching is case
// insensitive; the pattern is lowercased here. The slab may be shared
// across calls on one goroutine and must not be shared across
// goroutines.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, false, true, &chars, lowered, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}
	match := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
		sort.Ints(match.Positions)
	}
	return match
}

// NewSlab allocates scratch space for FuzzyMatch.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
