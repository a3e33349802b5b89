// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/splitter"
)

// editFunc applies one engine operation to the loaded tree.
type editFunc func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error)

// editCommand wraps an engine operation as load, apply, save, print.
func editCommand(env *Environment, name, summary, usage, description string, argNames []string,
	extraFlags func(*pflag.FlagSet), edit editFunc) *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:        name,
		Summary:     summary,
		Usage:       usage,
		Description: description,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
			flags.addFlags(flagSet, true)
			if extraFlags != nil {
				extraFlags(flagSet)
			}
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := wantArgs(args, argNames...); err != nil {
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
			edited, err := edit(ws, tree, args)
			if err != nil {
				return err
			}
			if err := env.save(ctx, ws, edited); err != nil {
				return err
			}
			env.printTree(ws, edited)
			return nil
		},
	}
}

// parentOf finds the section holding childID.
func parentOf(tree *layout.Section, childID string) (string, error) {
	parent, _, ok := tree.FindChild(childID)
	if !ok {
		return "", cli.NotFound("pane %q: %w", childID, splitter.ErrChildNotFound)
	}
	return parent.ID, nil
}

// childOperation adapts an engine method taking (section, child) to a
// command argument naming only the child.
func childOperation(operation func(*layout.Section, string, string) (*layout.Section, error)) editFunc {
	return func(_ *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
		sectionID, err := parentOf(tree, args[0])
		if err != nil {
			return nil, err
		}
		edited, err := operation(tree, sectionID, args[0])
		if err != nil {
			return nil, classify(err)
		}
		return edited, nil
	}
}

func splitCommand(env *Environment) *cli.Command {
	var axisName string
	return editCommand(env, "split",
		"Split a pane in two",
		"hearth layout split <pane-id> [--axis row|column] [flags]",
		`Split a pane in two. The pane keeps its content and its id in the
first half; the second half is a new empty pane. With --axis row the
halves sit side by side, with --axis column they are stacked.`,
		[]string{"pane-id"},
		func(flagSet *pflag.FlagSet) {
			flagSet.StringVar(&axisName, "axis", "row", "row (side by side) or column (stacked)")
		},
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			axis, err := layout.ParseAxis(axisName)
			if err != nil {
				return nil, cli.Validation("%w", err)
			}
			return childOperation(func(tree *layout.Section, sectionID, childID string) (*layout.Section, error) {
				return ws.engine.Split(tree, sectionID, childID, axis)
			})(ws, tree, args)
		})
}

func removeCommand(env *Environment) *cli.Command {
	return editCommand(env, "remove",
		"Remove a pane, giving its space to its siblings",
		"hearth layout remove <pane-id> [flags]",
		"",
		[]string{"pane-id"}, nil,
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			return childOperation(ws.engine.RemoveSlot)(ws, tree, args)
		})
}

func assignCommand(env *Environment) *cli.Command {
	return editCommand(env, "assign",
		"Show a widget in a pane",
		"hearth layout assign <pane-id> <widget-id> [flags]",
		`Show a widget in a pane, replacing whatever it showed before. The
widget id need not exist in the catalog yet; such a pane renders empty
until it does.`,
		[]string{"pane-id", "widget-id"}, nil,
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			edited, err := ws.engine.AssignWidget(tree, args[0], args[1])
			if err != nil {
				return nil, classify(err)
			}
			if !ws.catalog.Has(args[1]) {
				fmt.Fprintf(env.Stderr, "warning: widget %q is not in the catalog\n", args[1])
			}
			return edited, nil
		})
}

func clearCommand(env *Environment) *cli.Command {
	return editCommand(env, "clear",
		"Empty a pane",
		"hearth layout clear <pane-id> [flags]",
		"",
		[]string{"pane-id"}, nil,
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			edited, err := ws.engine.ClearSlot(tree, args[0])
			if err != nil {
				return nil, classify(err)
			}
			return edited, nil
		})
}

func addRowCommand(env *Environment, below bool) *cli.Command {
	name, where := "add-above", "before"
	if below {
		name, where = "add-below", "after"
	}
	return editCommand(env, name,
		fmt.Sprintf("Insert an empty pane %s a pane", where),
		fmt.Sprintf("hearth layout %s <pane-id> [flags]", name),
		fmt.Sprintf(`Insert an empty pane %s a pane in the same section, with the
same flex. In a column section that is above or below; in a row section
it is to the left or right.`, where),
		[]string{"pane-id"}, nil,
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			operation := ws.engine.AddRowAbove
			if below {
				operation = ws.engine.AddRowBelow
			}
			return childOperation(operation)(ws, tree, args)
		})
}

func distributeCommand(env *Environment) *cli.Command {
	return editCommand(env, "distribute",
		"Give every child of a section the same flex",
		"hearth layout distribute <section-id> [flags]",
		"",
		[]string{"section-id"}, nil,
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			edited, err := ws.engine.DistributeEvenly(tree, args[0])
			if err != nil {
				return nil, classify(err)
			}
			return edited, nil
		})
}

func resizeCommand(env *Environment) *cli.Command {
	return editCommand(env, "resize",
		"Move the boundary after a child of a section",
		"hearth layout resize <section-id> <child-index> <delta> <container-size> [flags]",
		`Move the boundary between child <child-index> and the next child by
<delta> units out of a container <container-size> units long, as a drag
would. Only the two children next to the boundary change; their total
flex is kept. The move is refused when either would drop below the
flex floor.

Put -- before a negative delta so it is not read as a flag.`,
		[]string{"section-id", "child-index", "delta", "container-size"}, nil,
		func(ws *workspace, tree *layout.Section, args []string) (*layout.Section, error) {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return nil, cli.Validation("child index %q: %w", args[1], err)
			}
			delta, err := parseFinite("delta", args[2])
			if err != nil {
				return nil, err
			}
			containerSize, err := parseFinite("container size", args[3])
			if err != nil {
				return nil, err
			}
			edited, err := ws.engine.ResizeSiblings(tree, args[0], index, delta, containerSize)
			if err != nil {
				return nil, classify(err)
			}
			return edited, nil
		})
}

func parseFinite(what, text string) (float64, error) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, cli.Validation("%s %q is not a number", what, text)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, cli.Validation("%s must be finite, got %q", what, text)
	}
	return value, nil
}
