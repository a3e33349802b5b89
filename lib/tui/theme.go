// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for hearth's terminal UI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected pane and highlighted menu rows.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Pane chrome.
	PaneBorder         lipgloss.Color
	PaneSelectedBorder lipgloss.Color
	EmptyPaneText      lipgloss.Color
	MissingWidget      lipgloss.Color

	// Splitter handles between siblings. SplitterActive is used while
	// a drag session owns the handle.
	Splitter       lipgloss.Color
	SplitterActive lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color

	// Fuzzy filter match highlighting.
	MatchForeground lipgloss.Color

	// Floating menus.
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PaneBorder:         lipgloss.Color("240"),
	PaneSelectedBorder: lipgloss.Color("75"),  // blue
	EmptyPaneText:      lipgloss.Color("241"), // same as HelpText
	MissingWidget:      lipgloss.Color("196"), // red

	Splitter:       lipgloss.Color("238"),
	SplitterActive: lipgloss.Color("220"), // amber

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("203"),

	MatchForeground: lipgloss.Color("114"), // green

	TooltipForeground: lipgloss.Color("252"),
	TooltipBackground: lipgloss.Color("237"),
}

// KioskTheme trades the subtle dark palette for high-contrast chrome
// readable across a room.
var KioskTheme = Theme{
	NormalText: lipgloss.Color("255"),
	FaintText:  lipgloss.Color("250"),

	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),

	PaneBorder:         lipgloss.Color("250"),
	PaneSelectedBorder: lipgloss.Color("226"),
	EmptyPaneText:      lipgloss.Color("248"),
	MissingWidget:      lipgloss.Color("196"),

	Splitter:       lipgloss.Color("244"),
	SplitterActive: lipgloss.Color("226"),

	HeaderForeground: lipgloss.Color("231"),
	BorderColor:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("250"),
	ErrorText:        lipgloss.Color("196"),

	MatchForeground: lipgloss.Color("46"),

	TooltipForeground: lipgloss.Color("231"),
	TooltipBackground: lipgloss.Color("238"),
}

// ThemeByName resolves a configured theme name. The empty name selects
// DefaultTheme.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default", "dark":
		return DefaultTheme, nil
	case "kiosk":
		return KioskTheme, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (expected default or kiosk)", name)
	}
}
