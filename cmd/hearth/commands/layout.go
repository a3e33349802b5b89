// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/widget"
)

func layoutCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "layout",
		Summary: "Inspect, import, and edit stored layouts",
		Description: `Inspect, import, and edit stored layouts.

Editing commands load the profile's layout, apply one operation, and
save the result as a new revision. Panes are addressed by id; use
'hearth layout show' to see them.`,
		Subcommands: []*cli.Command{
			layoutShowCommand(env),
			layoutValidateCommand(env),
			layoutImportCommand(env),
			layoutExportCommand(env),
			layoutResetCommand(env),
			splitCommand(env),
			removeCommand(env),
			assignCommand(env),
			clearCommand(env),
			addRowCommand(env, false),
			addRowCommand(env, true),
			distributeCommand(env),
			resizeCommand(env),
		},
	}
}

// printTree writes the outline form of tree, marking widget ids the
// catalog does not know.
func (env *Environment) printTree(ws *workspace, tree *layout.Section) {
	fmt.Fprint(env.Stdout, layout.Format(tree, ws.catalog.Has))
}

func layoutShowCommand(env *Environment) *cli.Command {
	var (
		flags  commonFlags
		output cli.JSONOutput
	)
	return &cli.Command{
		Name:    "show",
		Summary: "Print a profile's layout",
		Usage:   "hearth layout show [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			output.AddFlag(flagSet)
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
			if done, err := output.EmitJSON(env.Stdout, tree); done {
				return err
			}
			env.printTree(ws, tree)
			return nil
		},
	}
}

func layoutValidateCommand(env *Environment) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:    "validate",
		Summary: "Check a layout document without storing it",
		Usage:   "hearth layout validate <file> [flags]",
		Description: `Check a JSONC layout document against the layout rules: known axes,
unique ids, positive flex at or above the configured floor, and bounded
nesting. Widget ids missing from the catalog are reported but do not
make the document invalid.

Exits 1 when the document is invalid.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flags.addFlags(flagSet, false)
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := wantArgs(args, "file"); err != nil {
				return err
			}
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			tree, err := layout.ReadFile(args[0], cfg.Layout.MinFlex)
			if err != nil {
				fmt.Fprintf(env.Stdout, "invalid: %v\n", err)
				return &cli.ExitError{Code: 1}
			}

			fmt.Fprintf(env.Stdout, "valid: %d panes, nesting depth %d\n", tree.CountPanes(), tree.Depth())
			catalog, err := widget.ReadCatalog(cfg.Paths.Widgets)
			if err != nil {
				return cli.Validation("%w", err)
			}
			for _, id := range widget.Missing(catalog, tree.WidgetIDs()) {
				fmt.Fprintf(env.Stdout, "warning: widget %q is not in the catalog\n", id)
			}
			return nil
		},
	}
}

func layoutImportCommand(env *Environment) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:    "import",
		Summary: "Replace a profile's layout with a document",
		Usage:   "hearth layout import <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("import", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := wantArgs(args, "file"); err != nil {
				return err
			}
			ws, err := env.open(&flags, logger)
			if err != nil {
				return err
			}
			defer ws.Close()

			tree, err := layout.ReadFile(args[0], ws.config.Layout.MinFlex)
			if err != nil {
				return cli.Validation("%w", err)
			}
			return env.save(ctx, ws, tree)
		},
	}
}

func layoutExportCommand(env *Environment) *cli.Command {
	var (
		flags      commonFlags
		outputPath string
	)
	return &cli.Command{
		Name:    "export",
		Summary: "Write a profile's layout as a JSON document",
		Usage:   "hearth layout export [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			flagSet.StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")
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
			document, err := layout.Marshal(tree)
			if err != nil {
				return cli.Internal("%w", err)
			}
			document = append(document, '\n')
			if outputPath == "" {
				_, err = env.Stdout.Write(document)
				return err
			}
			if err := os.WriteFile(outputPath, document, 0o644); err != nil {
				return cli.Internal("writing %s: %w", outputPath, err)
			}
			return nil
		},
	}
}

func layoutResetCommand(env *Environment) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:    "reset",
		Summary: "Replace a profile's layout with a single empty pane",
		Usage:   "hearth layout reset [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reset", pflag.ContinueOnError)
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
			return env.save(ctx, ws, layout.Default())
		},
	}
}

