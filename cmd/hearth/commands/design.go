// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/designer"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/tui"
)

func designCommand(env *Environment) *cli.Command {
	var (
		flags     commonFlags
		logOutput string
		themeName string
	)
	return &cli.Command{
		Name:    "design",
		Summary: "Edit a layout interactively in the terminal",
		Usage:   "hearth design [flags]",
		Description: `Edit a profile's layout interactively.

Click a pane to select it and drag the lines between panes to resize.
Keys act on the selected pane:

  |    split side by side      -    split stacked
  a    add above (or left)     b    add below (or right)
  x    remove                  =    distribute the section evenly
  w    assign a widget         c    clear
  tab  next pane               S-tab previous pane
  u    undo                    C-s  save
  q    save and quit           C-c  quit without saving

The designer draws on the whole terminal, so logs go to --log-output
or nowhere.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("design", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			flagSet.StringVar(&logOutput, "log-output", "", "append JSON logs to this file")
			flagSet.StringVar(&themeName, "theme", "", "default or kiosk (default: designer.theme)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := wantArgs(args); err != nil {
				return err
			}
			logger, closeLog, err := cli.NewFileLogger(logOutput, slog.LevelDebug)
			if err != nil {
				return cli.Internal("%w", err)
			}
			defer closeLog()

			ws, err := env.open(&flags, logger.With("command", "design"))
			if err != nil {
				return err
			}
			defer ws.Close()

			if themeName == "" {
				themeName = ws.config.Designer.Theme
			}
			theme, err := tui.ThemeByName(themeName)
			if err != nil {
				return cli.Validation("%w", err)
			}
			tree, err := env.load(ctx, ws)
			if err != nil {
				return err
			}

			model := designer.NewModel(designer.Config{
				Profile: ws.profile,
				Tree:    tree,
				Engine:  ws.engine,
				Catalog: ws.catalog,
				Clock:   env.clock(),
				Theme:   &theme,
				Save: func(ctx context.Context, tree *layout.Section) error {
					_, err := ws.store.SaveLayout(ctx, ws.profile, tree)
					return err
				},
				Logger: ws.logger,
			})

			ws.logger.Info("designer started", "panes", tree.CountPanes())
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			final, err := program.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return cli.Internal("designer: %w", err)
			}
			if edited, ok := final.(designer.Model); ok && edited.Dirty() {
				fmt.Fprintf(env.Stderr, "%s: quit without saving the last changes\n", ws.profile)
			}
			return nil
		},
	}
}
