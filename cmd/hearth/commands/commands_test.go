// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/hearth/cmd/hearth/cli"
	"github.com/bureau-foundation/hearth/lib/clock"
	"github.com/bureau-foundation/hearth/lib/config"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/testutil"
)

const testCatalog = `{
	// Widgets for the command tests.
	"widgets": [
		{"id": "clock-1", "kind": "clock", "title": "Kitchen"},
		{"id": "note-1", "kind": "note", "text": "# Shopping"},
	],
}`

// columnDocument is a two-pane column: "top" shows clock-1 at twice
// the weight of the empty "bottom".
const columnDocument = `{
	"id": "root",
	"axis": "column",
	"children": [
		{"id": "top", "flex": 2, "content": {"kind": "widget", "widget_id": "clock-1"}},
		{"id": "bottom", "flex": 1, "content": {"kind": "empty"}},
	],
}`

type harness struct {
	t      *testing.T
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	root   string
}

// newHarness points HEARTH_CONFIG at a configuration whose data
// directory is a fresh temporary directory holding testCatalog.
func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "widgets.jsonc"), []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath := testutil.LayoutFile(t, "hearth.yaml", fmt.Sprintf("paths:\n  root: %s\n", root))
	t.Setenv(config.EnvVar, configPath)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	return &harness{
		t: t,
		env: &Environment{
			Stdout: stdout,
			Stderr: stderr,
			Clock:  clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
			NewID:  testutil.Sequence("id"),
		},
		stdout: stdout,
		stderr: stderr,
		root:   root,
	}
}

// run executes one command line, clearing the output buffers first.
func (h *harness) run(args ...string) error {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	return Root(h.env).Execute(context.Background(), args, nil)
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	if err := h.run(args...); err != nil {
		h.t.Fatalf("%s: %v\nstderr: %s", strings.Join(args, " "), err, h.stderr)
	}
	return h.stdout.String()
}

func (h *harness) importColumn() {
	h.t.Helper()
	path := testutil.LayoutFile(h.t, "column.jsonc", columnDocument)
	h.mustRun("layout", "import", path)
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coded interface{ ExitCode() int }
	if !errors.As(err, &coded) {
		t.Fatalf("error %v carries no exit code", err)
	}
	return coded.ExitCode()
}

func TestShowDefaultLayout(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("layout", "show")
	want := "row root\n  [root-pane] flex=1 empty\n"
	if out != want {
		t.Errorf("show = %q, want %q", out, want)
	}
}

func TestSplitResizeRemove(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("layout", "split", "root-pane", "--axis", "row")
	if !strings.HasPrefix(out, "saved default (revision 1)\n") {
		t.Errorf("split output = %q", out)
	}
	// The nested section takes the first id, the new pane the second,
	// and the wrapper slot the third.
	for _, want := range []string{
		"[id-3] flex=1 section row id-1",
		"[root-pane] flex=0.5 empty",
		"[id-2] flex=0.5 empty",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("split output missing %q:\n%s", want, out)
		}
	}

	out = h.mustRun("layout", "resize", "id-1", "0", "40", "400")
	if !strings.Contains(out, "[root-pane] flex=0.6 empty") || !strings.Contains(out, "[id-2] flex=0.4 empty") {
		t.Errorf("resize output:\n%s", out)
	}

	err := h.run("layout", "resize", "--", "id-1", "0", "-1000", "400")
	if code := exitCode(t, err); code != 4 {
		t.Errorf("resize past the floor: exit %d, want 4 (%v)", code, err)
	}

	out = h.mustRun("layout", "remove", "id-2")
	if strings.Contains(out, "[id-2]") {
		t.Errorf("removed pane still present:\n%s", out)
	}
	if !strings.Contains(out, "[root-pane]") {
		t.Errorf("remaining pane missing:\n%s", out)
	}
}

func TestEditErrorsMapToExitCodes(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown pane", []string{"layout", "split", "nowhere"}, 3},
		{"unknown section", []string{"layout", "distribute", "nowhere"}, 3},
		{"bad axis", []string{"layout", "split", "root-pane", "--axis", "diagonal"}, 2},
		{"only pane", []string{"layout", "remove", "root-pane"}, 4},
		{"non-numeric delta", []string{"layout", "resize", "root", "0", "wide", "400"}, 2},
		{"infinite delta", []string{"layout", "resize", "root", "0", "Inf", "400"}, 2},
		{"missing argument", []string{"layout", "assign", "root-pane"}, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := h.run(test.args...)
			if err == nil {
				t.Fatal("command succeeded")
			}
			if code := exitCode(t, err); code != test.code {
				t.Errorf("exit %d, want %d (%v)", code, test.code, err)
			}
		})
	}

	// Failed edits store nothing.
	out := h.mustRun("revision", "list")
	if !strings.Contains(out, "no revisions") {
		t.Errorf("revision list after failed edits:\n%s", out)
	}
}

func TestAssignAndClear(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("layout", "assign", "root-pane", "clock-1")
	if !strings.Contains(out, "[root-pane] flex=1 widget clock-1\n") {
		t.Errorf("assign output:\n%s", out)
	}
	if h.stderr.Len() != 0 {
		t.Errorf("unexpected warning: %s", h.stderr)
	}

	out = h.mustRun("layout", "assign", "root-pane", "ghost")
	if !strings.Contains(out, "widget ghost (missing)") {
		t.Errorf("unresolved widget not marked:\n%s", out)
	}
	if !strings.Contains(h.stderr.String(), `widget "ghost" is not in the catalog`) {
		t.Errorf("missing catalog warning, stderr: %s", h.stderr)
	}

	err := h.run("widget", "check")
	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Code != 1 {
		t.Errorf("widget check with a missing widget: %v", err)
	}

	out = h.mustRun("layout", "clear", "root-pane")
	if !strings.Contains(out, "[root-pane] flex=1 empty") {
		t.Errorf("clear output:\n%s", out)
	}
	h.mustRun("widget", "check")
}

func TestAddRowAndDistribute(t *testing.T) {
	h := newHarness(t)
	h.importColumn()

	out := h.mustRun("layout", "add-below", "top")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// saved line, section line, then top, new pane, bottom.
	if len(lines) != 5 {
		t.Fatalf("add-below output:\n%s", out)
	}
	if lines[2] != "  [top] flex=2 widget clock-1" || lines[3] != "  [id-1] flex=2 empty" {
		t.Errorf("add-below order:\n%s", out)
	}

	out = h.mustRun("layout", "distribute", "root")
	if strings.Count(out, "flex=1 ") != 3 {
		t.Errorf("distribute output:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	h := newHarness(t)

	good := testutil.LayoutFile(t, "good.jsonc", columnDocument)
	out := h.mustRun("layout", "validate", good)
	if !strings.HasPrefix(out, "valid: 2 panes") {
		t.Errorf("validate output = %q", out)
	}

	bad := testutil.LayoutFile(t, "bad.jsonc", `{"id": "root", "axis": "row", "children": [
		{"id": "a", "flex": 0, "content": {"kind": "empty"}}
	]}`)
	err := h.run("layout", "validate", bad)
	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Code != 1 {
		t.Fatalf("validate invalid document: %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), "invalid: ") {
		t.Errorf("validate output = %q", h.stdout)
	}
}

func TestImportExportReset(t *testing.T) {
	h := newHarness(t)
	h.importColumn()

	out := h.mustRun("layout", "show")
	if !strings.Contains(out, "[top] flex=2 widget clock-1\n") || strings.Contains(out, "(missing)") {
		t.Errorf("show after import:\n%s", out)
	}

	exported := h.mustRun("layout", "export")
	tree, err := layout.Parse([]byte(exported), layout.MinFlex)
	if err != nil {
		t.Fatalf("parsing export: %v\n%s", err, exported)
	}
	if tree.Axis != layout.Column || len(tree.Children) != 2 || tree.Children[0].Content.WidgetID != "clock-1" {
		t.Errorf("exported tree = %+v", tree)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	h.mustRun("layout", "export", "-o", path)
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != exported {
		t.Errorf("file export differs from stdout export")
	}

	if out := h.mustRun("layout", "reset"); out != "saved default (revision 2)\n" {
		t.Errorf("reset = %q", out)
	}
	if out := h.mustRun("layout", "reset"); out != "default unchanged (revision 2)\n" {
		t.Errorf("second reset = %q", out)
	}
}

func TestProfiles(t *testing.T) {
	h := newHarness(t)
	h.mustRun("layout", "reset")
	h.mustRun("layout", "reset", "--profile", "kitchen")
	h.mustRun("layout", "split", "root-pane", "-p", "kitchen")

	h.mustRun("profile", "list", "--json")
	var entries []profileEntry
	if err := json.Unmarshal(h.stdout.Bytes(), &entries); err != nil {
		t.Fatalf("decoding profile list: %v\n%s", err, h.stdout)
	}
	if len(entries) != 2 {
		t.Fatalf("profiles = %+v", entries)
	}
	revisions := make(map[string]int)
	for _, entry := range entries {
		revisions[entry.Name] = entry.Revisions
	}
	if revisions["default"] != 1 || revisions["kitchen"] != 2 {
		t.Errorf("revision counts = %v", revisions)
	}

	if out := h.mustRun("profile", "delete", "kitchen"); out != "deleted kitchen\n" {
		t.Errorf("delete = %q", out)
	}
	err := h.run("profile", "delete", "kitchen")
	if code := exitCode(t, err); code != 3 {
		t.Errorf("deleting a missing profile: exit %d, want 3", code)
	}
	out := h.mustRun("profile", "list")
	if strings.Contains(out, "kitchen") || !strings.Contains(out, "default") {
		t.Errorf("profile list after delete:\n%s", out)
	}
}

func TestRevisions(t *testing.T) {
	h := newHarness(t)
	h.importColumn()
	h.mustRun("layout", "split", "top")

	h.mustRun("revision", "list", "--json")
	var entries []revisionEntry
	if err := json.Unmarshal(h.stdout.Bytes(), &entries); err != nil {
		t.Fatalf("decoding revision list: %v\n%s", err, h.stdout)
	}
	if len(entries) != 2 || entries[0].Sequence != 2 || entries[1].Sequence != 1 {
		t.Fatalf("revisions = %+v", entries)
	}
	if entries[0].Compression != "zstd" {
		t.Errorf("compression = %q, want zstd", entries[0].Compression)
	}

	out := h.mustRun("revision", "show", "1")
	if !strings.Contains(out, "column root\n  [top] flex=2 widget clock-1\n") {
		t.Errorf("revision show:\n%s", out)
	}

	out = h.mustRun("revision", "show", "1", "--diagnose")
	if !strings.Contains(out, `"top"`) || !strings.Contains(out, `"clock-1"`) {
		t.Errorf("diagnostic notation:\n%s", out)
	}

	out = h.mustRun("revision", "restore", "1")
	if !strings.HasPrefix(out, "restored revision 1 of default as revision 3\n") {
		t.Errorf("restore output:\n%s", out)
	}
	out = h.mustRun("layout", "show")
	if strings.Contains(out, "section") {
		t.Errorf("restored layout still split:\n%s", out)
	}

	if code := exitCode(t, h.run("revision", "show", "9")); code != 3 {
		t.Errorf("missing revision: exit %d, want 3", code)
	}
	if code := exitCode(t, h.run("revision", "restore", "first")); code != 2 {
		t.Errorf("bad sequence: exit %d, want 2", code)
	}
}

func TestWidgetList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("widget", "list")
	if !strings.Contains(out, "clock-1") || !strings.Contains(out, "Kitchen") || !strings.Contains(out, "note-1") {
		t.Errorf("widget list:\n%s", out)
	}

	h.mustRun("widget", "list", "--json")
	var instances []struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &instances); err != nil {
		t.Fatal(err)
	}
	if len(instances) != 2 || instances[0].ID != "clock-1" || instances[1].Kind != "note" {
		t.Errorf("instances = %+v", instances)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvVar, "")

	other := t.TempDir()
	configPath := testutil.LayoutFile(t, "other.yaml", fmt.Sprintf(`paths:
  root: %s
settings:
  compression: lz4
`, other))

	h.mustRun("layout", "reset", "--config", configPath)
	if _, err := os.Stat(filepath.Join(other, "hearth.db")); err != nil {
		t.Errorf("database not created under the configured root: %v", err)
	}
	h.mustRun("revision", "list", "--json", "--config", configPath)
	if !strings.Contains(h.stdout.String(), `"compression": "lz4"`) {
		t.Errorf("revision list = %s", h.stdout)
	}
}
