// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the hearth command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/clock"
	"github.com/bureau-foundation/hearth/lib/version"
)

// Environment is what commands read from and write to. Tests swap in
// buffers, a fake clock, and sequential ids.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Clock stamps saved layouts and drives clock widgets. Nil means
	// the real clock.
	Clock clock.Clock

	// NewID mints pane and section ids. Nil uses the engine default.
	NewID func() string
}

// DefaultEnvironment writes to the process's stdout and stderr.
func DefaultEnvironment() *Environment {
	return &Environment{Stdout: os.Stdout, Stderr: os.Stderr, Clock: clock.Real()}
}

func (env *Environment) clock() clock.Clock {
	if env.Clock == nil {
		return clock.Real()
	}
	return env.Clock
}

// Root returns the complete command tree.
func Root(env *Environment) *cli.Command {
	return &cli.Command{
		Name:   "hearth",
		Output: env.Stderr,
		Description: `hearth: split-pane layouts for wall displays.

A layout divides the screen into panes by repeatedly splitting it along
rows and columns. Each pane shows one widget. Layouts are stored per
profile, with a revision history, in a local SQLite database.`,
		Subcommands: []*cli.Command{
			layoutCommand(env),
			profileCommand(env),
			revisionCommand(env),
			widgetCommand(env),
			designCommand(env),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(env.Stdout, "hearth %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the designer on the kitchen display's layout",
				Command:     "hearth design --profile kitchen",
			},
			{
				Description: "Show the stored layout as an outline",
				Command:     "hearth layout show --profile kitchen",
			},
			{
				Description: "Split a pane side by side from a script",
				Command:     "hearth layout split root-pane --axis row --profile kitchen",
			},
			{
				Description: "Check a hand-written layout document",
				Command:     "hearth layout validate ./hallway.jsonc",
			},
		},
	}
}
