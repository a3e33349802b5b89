// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package widget holds the catalog of widget instances a layout can
// place into its slots, and the terminal renderers for each widget
// kind.
//
// A layout refers to widgets only by id. The [Catalog] resolves those
// ids; an id that does not resolve is a missing widget, which the
// designer draws as a placeholder rather than treating as an error. The
// catalog is loaded from a JSONC file:
//
//	{
//	  // Shown in the hallway.
//	  "widgets": [
//	    {"id": "clock", "kind": "clock", "title": "Time", "format": "15:04"},
//	    {"id": "todo", "kind": "note", "title": "Today", "text": "- [ ] water plants"},
//	  ],
//	}
//
// Four kinds exist: clock (current time in a Go time layout), label (the
// title alone, centered), text (plain text, word-wrapped), and note
// (markdown rendered with syntax-highlighted code blocks).
package widget
