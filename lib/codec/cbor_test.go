// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/hearth/lib/layout"
)

func sampleTree() *layout.Section {
	return &layout.Section{
		ID:   "root",
		Axis: layout.Row,
		Children: []layout.Child{
			{ID: "a", Flex: 0.6, Content: layout.Widget("clock-1")},
			{ID: "b", Flex: 0.4, Content: layout.Nested(&layout.Section{
				ID:   "inner",
				Axis: layout.Column,
				Children: []layout.Child{
					{ID: "c", Flex: 1, Content: layout.Empty()},
				},
			})},
		},
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	data, err := Marshal(sampleTree())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded layout.Section
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got, want := layout.Format(&decoded, nil), layout.Format(sampleTree(), nil); got != want {
		t.Errorf("round trip mismatch:\n%s\nwant:\n%s", got, want)
	}
	if err := layout.Validate(&decoded, layout.MinFlex); err != nil {
		t.Errorf("decoded tree invalid: %v", err)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(sampleTree())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for attempt := 0; attempt < 10; attempt++ {
		again, err := Marshal(sampleTree())
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("attempt %d produced different bytes", attempt)
		}
	}
}

func TestUsesJSONFieldNames(t *testing.T) {
	data, err := Marshal(sampleTree())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	for _, field := range []string{`"children"`, `"widget_id"`, `"flex"`} {
		if !strings.Contains(diagnostic, field) {
			t.Errorf("diagnostic notation missing %s: %s", field, diagnostic)
		}
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{
		"id":       "root",
		"axis":     "row",
		"children": []any{},
		"theme":    "dark",
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded layout.Section
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal with unknown field: %v", err)
	}
	if decoded.ID != "root" {
		t.Errorf("ID = %q, want root", decoded.ID)
	}
}
