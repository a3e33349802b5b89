// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable Load reads.
const EnvVar = "HEARTH_CONFIG"

// ErrNoConfig is returned by Load when HEARTH_CONFIG is unset.
var ErrNoConfig = errors.New(EnvVar + " is not set")

// Environment selects which override section applies.
type Environment string

const (
	// Development is a desktop terminal used to author layouts.
	Development Environment = "development"

	// Kiosk is a wall display running the designer full screen.
	Kiosk Environment = "kiosk"
)

// Config is hearth's configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	Paths    PathsConfig    `yaml:"paths"`
	Layout   LayoutConfig   `yaml:"layout"`
	Designer DesignerConfig `yaml:"designer"`
	Settings SettingsConfig `yaml:"settings"`

	Development *Overrides `yaml:"development,omitempty"`
	Kiosk       *Overrides `yaml:"kiosk,omitempty"`
}

// Overrides holds the per-environment sections. Empty strings and
// zero numbers leave the base value alone.
type Overrides struct {
	Paths    *PathsConfig    `yaml:"paths,omitempty"`
	Layout   *LayoutConfig   `yaml:"layout,omitempty"`
	Designer *DesignerConfig `yaml:"designer,omitempty"`
	Settings *SettingsConfig `yaml:"settings,omitempty"`
}

// PathsConfig locates hearth's files.
type PathsConfig struct {
	// Root is the data directory. Default: ~/.local/share/hearth.
	Root string `yaml:"root"`

	// Database is the SQLite settings file.
	// Default: ${HEARTH_ROOT}/hearth.db
	Database string `yaml:"database"`

	// Widgets is the JSONC widget registry. A missing file is an
	// empty registry. Default: ${HEARTH_ROOT}/widgets.jsonc
	Widgets string `yaml:"widgets"`
}

// LayoutConfig tunes the splitter engine.
type LayoutConfig struct {
	// MinFlex is the smallest weight a pane may have. Default: 0.1
	MinFlex float64 `yaml:"min_flex"`

	// DistributeFlex is the weight every sibling gets from
	// distribute. Default: 1
	DistributeFlex float64 `yaml:"distribute_flex"`
}

// DesignerConfig configures the terminal designer.
type DesignerConfig struct {
	// DefaultProfile is used when --profile is not given.
	// Default: default
	DefaultProfile string `yaml:"default_profile"`

	// Theme is "default" or "kiosk". Default: default (kiosk in the
	// kiosk environment).
	Theme string `yaml:"theme"`
}

// SettingsConfig configures the settings store.
type SettingsConfig struct {
	// RevisionLimit is how many revisions each profile keeps. -1
	// keeps all of them. Default: 50
	RevisionLimit int `yaml:"revision_limit"`

	// Compression is none, lz4, or zstd. Default: zstd
	Compression string `yaml:"compression"`
}

// Default returns the development configuration with every field set
// and paths expanded.
func Default() *Config {
	cfg := defaults()
	cfg.expandVariables()
	return cfg
}

// defaults leaves the database and registry paths relative to
// ${HEARTH_ROOT}, so a configured root moves them too.
func defaults() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root:     filepath.Join(homeDir, ".local", "share", "hearth"),
			Database: "${HEARTH_ROOT}/hearth.db",
			Widgets:  "${HEARTH_ROOT}/widgets.jsonc",
		},
		Layout: LayoutConfig{
			MinFlex:        0.1,
			DistributeFlex: 1,
		},
		Designer: DesignerConfig{
			DefaultProfile: "default",
			Theme:          "default",
		},
		Settings: SettingsConfig{
			RevisionLimit: 50,
			Compression:   "zstd",
		},
	}
}

// Load reads the file named by HEARTH_CONFIG.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, ErrNoConfig
	}
	return LoadFile(path)
}

// LoadFile reads one configuration file over the defaults, applies the
// matching environment overrides, and expands path variables. The
// result is not validated; call Validate.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse is LoadFile without the file.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Kiosk:
		overrides = c.Kiosk
		if overrides == nil {
			overrides = &Overrides{Designer: &DesignerConfig{Theme: "kiosk"}}
		}
	}
	if overrides == nil {
		return
	}

	if paths := overrides.Paths; paths != nil {
		override(&c.Paths.Root, paths.Root)
		override(&c.Paths.Database, paths.Database)
		override(&c.Paths.Widgets, paths.Widgets)
	}
	if layout := overrides.Layout; layout != nil {
		override(&c.Layout.MinFlex, layout.MinFlex)
		override(&c.Layout.DistributeFlex, layout.DistributeFlex)
	}
	if designer := overrides.Designer; designer != nil {
		override(&c.Designer.DefaultProfile, designer.DefaultProfile)
		override(&c.Designer.Theme, designer.Theme)
	}
	if settings := overrides.Settings; settings != nil {
		override(&c.Settings.RevisionLimit, settings.RevisionLimit)
		override(&c.Settings.Compression, settings.Compression)
	}
}

func override[T comparable](field *T, value T) {
	var zero T
	if value != zero {
		*field = value
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HEARTH_ROOT": c.Paths.Root,
		"HOME":        os.Getenv("HOME"),
	}
	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["HEARTH_ROOT"] = c.Paths.Root

	c.Paths.Database = expandVars(c.Paths.Database, vars)
	c.Paths.Widgets = expandVars(c.Paths.Widgets, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default}. vars wins over the
// process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, fallback := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return fallback
	})
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Kiosk {
		errs = append(errs, fmt.Errorf("invalid environment %q (want development or kiosk)", c.Environment))
	}
	if c.Paths.Root == "" {
		errs = append(errs, errors.New("paths.root is required"))
	}
	if c.Paths.Database == "" {
		errs = append(errs, errors.New("paths.database is required"))
	}

	minFlex, distribute := c.Layout.MinFlex, c.Layout.DistributeFlex
	if math.IsNaN(minFlex) || minFlex <= 0 || minFlex > 0.5 {
		errs = append(errs, fmt.Errorf("layout.min_flex must be in (0, 0.5], got %g", minFlex))
	}
	if math.IsNaN(distribute) || math.IsInf(distribute, 0) || distribute < minFlex {
		errs = append(errs, fmt.Errorf("layout.distribute_flex must be at least layout.min_flex (%g), got %g", minFlex, distribute))
	}

	if c.Designer.DefaultProfile == "" {
		errs = append(errs, errors.New("designer.default_profile is required"))
	}
	if c.Settings.RevisionLimit < -1 {
		errs = append(errs, fmt.Errorf("settings.revision_limit must be -1 or more, got %d", c.Settings.RevisionLimit))
	}
	switch c.Settings.Compression {
	case "", "none", "lz4", "zstd":
	default:
		errs = append(errs, fmt.Errorf("settings.compression must be one of none, lz4, zstd; got %q", c.Settings.Compression))
	}

	return errors.Join(errs...)
}

// EnsurePaths creates the data directory and the database's parent.
func (c *Config) EnsurePaths() error {
	for _, dir := range []string{c.Paths.Root, filepath.Dir(c.Paths.Database)} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
