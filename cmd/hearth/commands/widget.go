// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/widget"
)

func widgetCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "widget",
		Summary: "Inspect the widget catalog",
		Description: `Inspect the widget catalog.

The catalog is a JSONC file (paths.widgets in the configuration)
listing the widgets panes can show:

  {"widgets": [{"id": "clock-1", "kind": "clock", "title": "Kitchen"}]}

Kinds are clock, label, text, and note (markdown).`,
		Subcommands: []*cli.Command{
			widgetListCommand(env),
			widgetCheckCommand(env),
		},
	}
}

func widgetListCommand(env *Environment) *cli.Command {
	var (
		flags  commonFlags
		output cli.JSONOutput
	)
	return &cli.Command{
		Name:    "list",
		Summary: "List catalog widgets",
		Usage:   "hearth widget list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.addFlags(flagSet, false)
			output.AddFlag(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := wantArgs(args); err != nil {
				return err
			}
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			catalog, err := widget.ReadCatalog(cfg.Paths.Widgets)
			if err != nil {
				return cli.Validation("%w", err)
			}
			instances := catalog.List()
			if done, err := output.EmitJSON(env.Stdout, instances); done {
				return err
			}

			if len(instances) == 0 {
				fmt.Fprintf(env.Stdout, "no widgets in %s\n", cfg.Paths.Widgets)
				return nil
			}
			table := tabwriter.NewWriter(env.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(table, "ID\tKIND\tTITLE")
			for _, instance := range instances {
				fmt.Fprintf(table, "%s\t%s\t%s\n", instance.ID, instance.Kind, instance.Title)
			}
			return table.Flush()
		},
	}
}

func widgetCheckCommand(env *Environment) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:    "check",
		Summary: "Report widget ids a profile uses that the catalog lacks",
		Usage:   "hearth widget check [flags]",
		Description: `Report widget ids referenced by a profile's layout that are missing
from the catalog. Such panes render empty. Exits 1 when any are
missing.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := wantArgs(args); err != nil {
				return err
			}
			ws, err := env.open(&flags, logger)
			if err != nil {
				return err
			}
			defer ws.Close()

			tree, err := env.load(ctx, ws)
			if err != nil {
				return err
			}
			missing := widget.Missing(ws.catalog, tree.WidgetIDs())
			if len(missing) == 0 {
				fmt.Fprintf(env.Stdout, "%s: all %d widgets resolve\n", ws.profile, len(tree.WidgetIDs()))
				return nil
			}
			for _, id := range missing {
				fmt.Fprintf(env.Stdout, "%s: widget %q is not in the catalog\n", ws.profile, id)
			}
			return &cli.ExitError{Code: 1}
		},
	}
}
