// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/jsonc"
)

// Kind selects how a widget instance renders.
type Kind string

const (
	KindClock Kind = "clock"
	KindLabel Kind = "label"
	KindText  Kind = "text"
	KindNote  Kind = "note"
)

// Valid reports whether kind is one of the known kinds.
func (kind Kind) Valid() bool {
	switch kind {
	case KindClock, KindLabel, KindText, KindNote:
		return true
	}
	return false
}

// DefaultClockFormat is used by clock widgets without a format.
const DefaultClockFormat = "15:04:05"

// Instance is one configured widget.
type Instance struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Format string `json:"format,omitempty"`
}

// Label returns the title, falling back to the id.
func (instance Instance) Label() string {
	if instance.Title != "" {
		return instance.Title
	}
	return instance.ID
}

// Registry resolves widget ids. Layout operations never consult it;
// only display and validation do.
type Registry interface {
	Lookup(id string) (Instance, bool)
}

var (
	// ErrDuplicateWidget is returned when two instances share an id.
	ErrDuplicateWidget = errors.New("duplicate widget id")

	// ErrInvalidWidget is returned for an instance with no id or an
	// unknown kind.
	ErrInvalidWidget = errors.New("invalid widget")
)

// Catalog is an immutable, ordered set of widget instances.
type Catalog struct {
	order     []string
	instances map[string]Instance
}

// NewCatalog builds a catalog, preserving the order of instances.
func NewCatalog(instances ...Instance) (*Catalog, error) {
	catalog := &Catalog{instances: make(map[string]Instance, len(instances))}
	for index, instance := range instances {
		if instance.ID == "" {
			return nil, fmt.Errorf("%w: widgets[%d]: id is required", ErrInvalidWidget, index)
		}
		if !instance.Kind.Valid() {
			return nil, fmt.Errorf("%w: widget %q: unknown kind %q", ErrInvalidWidget, instance.ID, instance.Kind)
		}
		if _, exists := catalog.instances[instance.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWidget, instance.ID)
		}
		catalog.instances[instance.ID] = instance
		catalog.order = append(catalog.order, instance.ID)
	}
	return catalog, nil
}

type catalogDocument struct {
	Widgets []Instance `json:"widgets"`
}

// ParseCatalog parses a JSONC catalog document. Comments and trailing
// commas are accepted.
func ParseCatalog(data []byte) (*Catalog, error) {
	var document catalogDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return nil, fmt.Errorf("parsing widget catalog: %w", err)
	}
	return NewCatalog(document.Widgets...)
}

// ReadCatalog loads a catalog from path. A missing file yields an
// empty catalog so a fresh install can run without one.
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("reading widget catalog: %w", err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// Lookup implements Registry.
func (catalog *Catalog) Lookup(id string) (Instance, bool) {
	if catalog == nil {
		return Instance{}, false
	}
	instance, ok := catalog.instances[id]
	return instance, ok
}

// Has reports whether id resolves. Suitable as the resolver argument
// to layout.Format.
func (catalog *Catalog) Has(id string) bool {
	_, ok := catalog.Lookup(id)
	return ok
}

// List returns the instances in catalog order.
func (catalog *Catalog) List() []Instance {
	if catalog == nil {
		return nil
	}
	instances := make([]Instance, len(catalog.order))
	for index, id := range catalog.order {
		instances[index] = catalog.instances[id]
	}
	return instances
}

// Len returns the number of instances.
func (catalog *Catalog) Len() int {
	if catalog == nil {
		return 0
	}
	return len(catalog.order)
}

// Missing returns the ids in ids that the registry cannot resolve,
// sorted and deduplicated.
func Missing(registry Registry, ids []string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := registry.Lookup(id); !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}
