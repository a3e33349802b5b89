// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFuzzyMatch(t *testing.T) {
	slab := NewSlab()

	result := FuzzyMatch("Wall Clock", []rune("clk"), slab)
	if !result.Matched {
		t.Fatal("expected match for clk in Wall Clock")
	}
	if len(result.Positions) != 3 {
		t.Fatalf("positions = %v, want 3 entries", result.Positions)
	}
	for index := 1; index < len(result.Positions); index++ {
		if result.Positions[index] <= result.Positions[index-1] {
			t.Fatalf("positions not ascending: %v", result.Positions)
		}
	}

	if FuzzyMatch("Wall Clock", []rune("xyz"), slab).Matched {
		t.Error("unexpected match for xyz")
	}
	if !FuzzyMatch("anything", nil, slab).Matched {
		t.Error("empty pattern should match everything")
	}
}

func TestMenuFiltering(t *testing.T) {
	menu := NewMenu("Widget", []MenuOption{
		{Label: "clock", Value: "w-clock"},
		{Label: "calendar", Value: "w-calendar"},
		{Label: "notes", Value: "w-notes"},
	})

	if got := len(menu.Visible()); got != 3 {
		t.Fatalf("visible = %d, want 3 before filtering", got)
	}

	menu.Type('c', 'l')
	visible := menu.Visible()
	if len(visible) != 2 {
		t.Fatalf("visible after 'cl' = %v, want clock and calendar", visible)
	}
	selected, ok := menu.Selected()
	if !ok || selected.Value != "w-clock" {
		t.Errorf("selected = %+v, %v; want w-clock", selected, ok)
	}

	menu.MoveDown()
	selected, _ = menu.Selected()
	if selected.Value != "w-calendar" {
		t.Errorf("after MoveDown selected = %q, want w-calendar", selected.Value)
	}
	menu.MoveDown()
	selected, _ = menu.Selected()
	if selected.Value != "w-clock" {
		t.Errorf("MoveDown should wrap, got %q", selected.Value)
	}

	menu.Type('z')
	if _, ok := menu.Selected(); ok {
		t.Error("expected no selection when nothing matches")
	}
	if menu.Height() != 2 {
		t.Errorf("height with no matches = %d, want 2", menu.Height())
	}

	if !menu.Backspace() || menu.Query() != "cl" {
		t.Errorf("query after backspace = %q, want cl", menu.Query())
	}
	menu.SetQuery("")
	if menu.Backspace() {
		t.Error("backspace on empty query should report false")
	}
}

func TestMenuRenderWidths(t *testing.T) {
	menu := NewMenu("Widget", []MenuOption{
		{Label: "clock", Detail: "clock"},
		{Label: "a much longer label"},
	})
	lines := menu.Render(DefaultTheme)
	if len(lines) != menu.Height() {
		t.Fatalf("rendered %d lines, want %d", len(lines), menu.Height())
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != menu.Width() {
			t.Errorf("line %d width = %d, want %d", index, width, menu.Width())
		}
	}

	menu.AnchorX, menu.AnchorY = 4, 2
	if !menu.Contains(4, 2) || menu.Contains(3, 2) {
		t.Error("Contains disagrees with anchor")
	}
	if menu.OptionAtY(3) != 0 || menu.OptionAtY(2) != -1 {
		t.Error("OptionAtY should skip the filter row")
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	result := SpliceOverlay(view, []string{"XX", "YY"}, 3, 1)
	lines := strings.Split(ansi.Strip(result), "\n")
	want := []string{"aaaaaaaa", "bbbXXbbb", "cccYYccc"}
	for index := range want {
		if lines[index] != want[index] {
			t.Errorf("line %d = %q, want %q", index, lines[index], want[index])
		}
	}

	if got := SpliceOverlay(view, nil, 0, 0); got != view {
		t.Error("empty overlay should return view unchanged")
	}
}

func TestFitAndCenter(t *testing.T) {
	if got := FitLine("abc", 5); got != "abc  " {
		t.Errorf("FitLine pad = %q", got)
	}
	if got := FitLine("abcdef", 4); ansi.StringWidth(got) != 4 || !strings.HasSuffix(got, "…") {
		t.Errorf("FitLine truncate = %q", got)
	}
	if got := FitLine("abc", 0); got != "" {
		t.Errorf("FitLine zero width = %q", got)
	}
	if got := CenterLine("ab", 6); got != "  ab  " {
		t.Errorf("CenterLine = %q", got)
	}
}

func TestThemeByName(t *testing.T) {
	if _, err := ThemeByName("kiosk"); err != nil {
		t.Fatal(err)
	}
	if theme, _ := ThemeByName(""); theme != DefaultTheme {
		t.Error("empty name should select the default theme")
	}
	if _, err := ThemeByName("neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
