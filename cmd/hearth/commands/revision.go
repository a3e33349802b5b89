// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/codec"
	"github.com/bureau-foundation/hearth/lib/settings"
)

func revisionCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "revision",
		Summary: "Browse and restore a profile's layout history",
		Description: `Browse and restore a profile's layout history.

Every save that changes a layout records a revision. Saving an
identical layout does not. Restoring a revision saves it again, so the
restore itself becomes the newest revision and can be undone the same
way.`,
		Subcommands: []*cli.Command{
			revisionListCommand(env),
			revisionShowCommand(env),
			revisionRestoreCommand(env),
		},
	}
}

type revisionEntry struct {
	Sequence    int64     `json:"sequence"`
	Hash        string    `json:"hash"`
	Compression string    `json:"compression"`
	Size        int       `json:"size"`
	StoredSize  int       `json:"stored_size"`
	CreatedAt   time.Time `json:"created_at"`
}

func revisionListCommand(env *Environment) *cli.Command {
	var (
		flags  commonFlags
		output cli.JSONOutput
	)
	return &cli.Command{
		Name:    "list",
		Summary: "List revisions, newest first",
		Usage:   "hearth revision list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
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

			revisions, err := ws.store.Revisions(ctx, ws.profile)
			if err != nil {
				return cli.Internal("%w", err)
			}
			entries := make([]revisionEntry, len(revisions))
			for index, revision := range revisions {
				entries[index] = revisionEntry{
					Sequence:    revision.Sequence,
					Hash:        revision.Hash,
					Compression: string(revision.Compression),
					Size:        revision.Size,
					StoredSize:  revision.StoredSize,
					CreatedAt:   revision.CreatedAt,
				}
			}
			if done, err := output.EmitJSON(env.Stdout, entries); done {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintf(env.Stdout, "no revisions for %s\n", ws.profile)
				return nil
			}
			table := tabwriter.NewWriter(env.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(table, "SEQ\tHASH\tCOMPRESSION\tSIZE\tSTORED\tCREATED")
			for _, entry := range entries {
				fmt.Fprintf(table, "%d\t%s\t%s\t%d\t%d\t%s\n",
					entry.Sequence, entry.Hash[:12], entry.Compression,
					entry.Size, entry.StoredSize, entry.CreatedAt.Format(time.DateTime))
			}
			return table.Flush()
		},
	}
}

func parseSequence(text string) (int64, error) {
	sequence, err := strconv.ParseInt(text, 10, 64)
	if err != nil || sequence < 1 {
		return 0, cli.Validation("revision %q is not a positive sequence number", text)
	}
	return sequence, nil
}

func revisionError(err error) error {
	if errors.Is(err, settings.ErrRevisionNotFound) {
		return cli.NotFound("%w", err)
	}
	return cli.Internal("%w", err)
}

func revisionShowCommand(env *Environment) *cli.Command {
	var (
		flags    commonFlags
		diagnose bool
	)
	return &cli.Command{
		Name:    "show",
		Summary: "Print one revision's layout",
		Usage:   "hearth revision show <sequence> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			flagSet.BoolVar(&diagnose, "diagnose", false, "print the stored CBOR in diagnostic notation")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := wantArgs(args, "sequence"); err != nil {
				return err
			}
			sequence, err := parseSequence(args[0])
			if err != nil {
				return err
			}
			ws, err := env.open(&flags, logger)
			if err != nil {
				return err
			}
			defer ws.Close()

			if diagnose {
				snapshot, err := ws.store.RevisionSnapshot(ctx, ws.profile, sequence)
				if err != nil {
					return revisionError(err)
				}
				notation, err := codec.Diagnose(snapshot)
				if err != nil {
					return cli.Internal("revision %d: %w", sequence, err)
				}
				fmt.Fprintln(env.Stdout, notation)
				return nil
			}

			tree, err := ws.store.LoadRevision(ctx, ws.profile, sequence)
			if err != nil {
				return revisionError(err)
			}
			env.printTree(ws, tree)
			return nil
		},
	}
}

func revisionRestoreCommand(env *Environment) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:    "restore",
		Summary: "Make an earlier revision the current layout",
		Usage:   "hearth revision restore <sequence> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("restore", pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := wantArgs(args, "sequence"); err != nil {
				return err
			}
			sequence, err := parseSequence(args[0])
			if err != nil {
				return err
			}
			ws, err := env.open(&flags, logger)
			if err != nil {
				return err
			}
			defer ws.Close()

			tree, result, err := ws.store.RestoreRevision(ctx, ws.profile, sequence)
			if err != nil {
				return revisionError(err)
			}
			if result.NewRevision {
				fmt.Fprintf(env.Stdout, "restored revision %d of %s as revision %d\n", sequence, ws.profile, result.Sequence)
			} else {
				fmt.Fprintf(env.Stdout, "revision %d of %s is already current\n", sequence, ws.profile)
			}
			env.printTree(ws, tree)
			return nil
		},
	}
}
