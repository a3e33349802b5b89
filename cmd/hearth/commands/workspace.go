// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/config"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/settings"
	"github.com/bureau-foundation/hearth/lib/splitter"
	"github.com/bureau-foundation/hearth/lib/widget"
)

// commonFlags are accepted by every command that touches the store.
type commonFlags struct {
	configPath string
	profile    string
}

func (flags *commonFlags) addFlags(flagSet *pflag.FlagSet, withProfile bool) {
	flagSet.StringVar(&flags.configPath, "config", "", "configuration file (default: $"+config.EnvVar+")")
	if withProfile {
		flagSet.StringVarP(&flags.profile, "profile", "p", "", "layout profile (default: designer.default_profile)")
	}
}

// workspace is everything a command needs once configuration is
// loaded: the store, an engine tuned by the config, and the widget
// catalog.
type workspace struct {
	config  *config.Config
	store   *settings.Store
	engine  *splitter.Engine
	catalog *widget.Catalog
	profile string
	logger  *slog.Logger
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNoConfig) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

func (env *Environment) open(flags *commonFlags, logger *slog.Logger) (*workspace, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, cli.Internal("%w", err)
	}

	compression, err := settings.ParseCompression(cfg.Settings.Compression)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	store, err := settings.Open(settings.Config{
		Path:          cfg.Paths.Database,
		MinFlex:       cfg.Layout.MinFlex,
		RevisionLimit: cfg.Settings.RevisionLimit,
		Compression:   compression,
		Clock:         env.clock(),
		Logger:        logger,
	})
	if err != nil {
		return nil, cli.Internal("%w", err)
	}

	catalog, err := widget.ReadCatalog(cfg.Paths.Widgets)
	if err != nil {
		store.Close()
		return nil, cli.Validation("%w", err)
	}

	options := []splitter.Option{
		splitter.WithMinFlex(cfg.Layout.MinFlex),
		splitter.WithDistributeFlex(cfg.Layout.DistributeFlex),
	}
	if env.NewID != nil {
		options = append(options, splitter.WithIDGenerator(env.NewID))
	}

	profile := flags.profile
	if profile == "" {
		profile = cfg.Designer.DefaultProfile
	}

	return &workspace{
		config:  cfg,
		store:   store,
		engine:  splitter.New(options...),
		catalog: catalog,
		profile: profile,
		logger:  logger.With("profile", profile),
	}, nil
}

func (ws *workspace) Close() error {
	return ws.store.Close()
}

// load returns the profile's tree, telling the user on stderr when a
// stored document had to be replaced by the default.
func (env *Environment) load(ctx context.Context, ws *workspace) (*layout.Section, error) {
	loaded, err := ws.store.LoadLayout(ctx, ws.profile)
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	if loaded.Recovered {
		fmt.Fprintf(env.Stderr, "warning: stored layout for %q is malformed; using the default layout\n", ws.profile)
	}
	return loaded.Tree, nil
}

// save stores tree and reports the revision.
func (env *Environment) save(ctx context.Context, ws *workspace, tree *layout.Section) error {
	result, err := ws.store.SaveLayout(ctx, ws.profile, tree)
	if err != nil {
		if errors.Is(err, layout.ErrMalformed) {
			return cli.Validation("%w", err)
		}
		return cli.Internal("%w", err)
	}
	if result.NewRevision {
		fmt.Fprintf(env.Stdout, "saved %s (revision %d)\n", ws.profile, result.Sequence)
	} else {
		fmt.Fprintf(env.Stdout, "%s unchanged (revision %d)\n", ws.profile, result.Sequence)
	}
	return nil
}

// classify maps engine sentinels to command error categories.
func classify(err error) error {
	switch {
	case errors.Is(err, splitter.ErrSectionNotFound),
		errors.Is(err, splitter.ErrChildNotFound),
		errors.Is(err, splitter.ErrSlotNotFound):
		return cli.NotFound("%w", err)
	case errors.Is(err, splitter.ErrOnlyChild),
		errors.Is(err, splitter.ErrBelowMinFlex),
		errors.Is(err, splitter.ErrTooDeep),
		errors.Is(err, splitter.ErrNotSlot):
		return cli.Rejected("%w", err)
	case errors.Is(err, splitter.ErrInvalidAxis),
		errors.Is(err, splitter.ErrChildIndex),
		errors.Is(err, splitter.ErrContainerSize),
		errors.Is(err, splitter.ErrWidgetID):
		return cli.Validation("%w", err)
	default:
		return cli.Internal("%w", err)
	}
}

func wantArgs(args []string, names ...string) error {
	if len(args) == len(names) {
		return nil
	}
	if len(args) < len(names) {
		return cli.Validation("missing argument <%s>", names[len(args)])
	}
	return cli.Validation("unexpected argument %q", args[len(names)])
}
