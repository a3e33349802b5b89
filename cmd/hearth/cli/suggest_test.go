// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"layout", "layuot", 2},
		{"revision", "revison", 1},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if got := levenshtein(test.b, test.a); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d (reversed)", test.b, test.a, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "layout"},
		{Name: "profile"},
		{Name: "revision"},
		{Name: "widget"},
		{Name: "design"},
	}
	tests := []struct {
		input string
		want  string
	}{
		{"layuot", "layout"},
		{"profiles", "profile"},
		{"revison", "revision"},
		{"widgte", "widget"},
		{"desing", "design"},
		{"zzzzzzzzz", ""},
		{"q", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	makeFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.StringP("profile", "p", "", "")
		flagSet.String("config", "", "")
		flagSet.Bool("json", false, "")
		flagSet.String("log-output", "", "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"double dash typo", []string{"--profle"}, "--profile"},
		{"single dash typo", []string{"-confg"}, "--config"},
		{"with value", []string{"--log-ouptut=/tmp/x"}, "--log-output"},
		{"known shorthand skipped", []string{"-p", "x", "--jsno"}, "--json"},
		{"nothing close", []string{"--zzzzzzzzz"}, ""},
		{"positional only", []string{"root"}, ""},
		{"after terminator", []string{"--", "--profle"}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, makeFlagSet()); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
