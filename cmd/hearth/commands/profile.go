// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
)

func profileCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "List and delete stored profiles",
		Subcommands: []*cli.Command{
			profileListCommand(env),
			profileDeleteCommand(env),
		},
	}
}

type profileEntry struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Revisions int       `json:"revisions"`
}

func profileListCommand(env *Environment) *cli.Command {
	var (
		flags  commonFlags
		output cli.JSONOutput
	)
	return &cli.Command{
		Name:    "list",
		Summary: "List stored profiles",
		Usage:   "hearth profile list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.addFlags(flagSet, false)
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

			profiles, err := ws.store.ListProfiles(ctx)
			if err != nil {
				return cli.Internal("%w", err)
			}
			entries := make([]profileEntry, len(profiles))
			for index, profile := range profiles {
				entries[index] = profileEntry{Name: profile.Name, UpdatedAt: profile.UpdatedAt, Revisions: profile.Revisions}
			}
			if done, err := output.EmitJSON(env.Stdout, entries); done {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(env.Stdout, "no stored profiles")
				return nil
			}
			table := tabwriter.NewWriter(env.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(table, "PROFILE\tUPDATED\tREVISIONS")
			for _, entry := range entries {
				fmt.Fprintf(table, "%s\t%s\t%d\n", entry.Name, entry.UpdatedAt.Format(time.DateTime), entry.Revisions)
			}
			return table.Flush()
		},
	}
}

func profileDeleteCommand(env *Environment) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a profile and its revision history",
		Usage:   "hearth profile delete <name> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flags.addFlags(flagSet, false)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := wantArgs(args, "name"); err != nil {
				return err
			}
			ws, err := env.open(&flags, logger)
			if err != nil {
				return err
			}
			defer ws.Close()

			deleted, err := ws.store.DeleteProfile(ctx, args[0])
			if err != nil {
				return cli.Internal("%w", err)
			}
			if !deleted {
				return cli.NotFound("profile %q does not exist", args[0])
			}
			fmt.Fprintf(env.Stdout, "deleted %s\n", args[0])
			return nil
		},
	}
}
