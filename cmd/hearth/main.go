// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/cmd/hearth/commands"
	"github.com/bureau-foundation/hearth/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that already printed what the user needs return an
		// ExitError. Don't add an "error:" line for those.
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coded interface{ ExitCode() int }
		if errors.As(err, &coded) {
			os.Exit(coded.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 1 && args[0] == "--version" {
		fmt.Printf("hearth %s\n", version.Full())
		return nil
	}

	level, err := logLevel(os.Getenv("HEARTH_LOG_LEVEL"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return commands.Root(commands.DefaultEnvironment()).Execute(ctx, args, cli.NewCommandLogger(level))
}

// logLevel parses HEARTH_LOG_LEVEL. Unset means warn.
func logLevel(value string) (slog.Level, error) {
	if value == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("HEARTH_LOG_LEVEL: %w", err)
	}
	return level, nil
}
