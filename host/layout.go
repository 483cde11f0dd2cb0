// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/layout.go
// Summary: Layout strategy contract and the static layout registry.

package host

import (
	"encoding/json"
	"log"
	"sync"
)

// LayoutManager is the pluggable strategy arranging activity widgets into
// one displayed container. Exactly one instance is active at a time;
// switching strategies at runtime is not supported, only re-parsing the
// active strategy's config on reload.
type LayoutManager interface {
	// Name returns the strategy name used to key its opaque config block.
	Name() string

	// ParseConfig applies the strategy's opaque config block.
	ParseConfig(raw json.RawMessage) error

	// Root returns the primary container widget.
	Root() Widget

	// AddActivity inserts an activity's widget into the container.
	AddActivity(act *Activity)

	// RemoveActivity removes an activity by identifier.
	RemoveActivity(id string)
}

// LayoutFactory builds a layout strategy instance.
type LayoutFactory func() LayoutManager

var (
	layoutMu sync.RWMutex
	layouts  = make(map[string]LayoutFactory)
)

// RegisterLayout registers a layout strategy constructor under its name.
func RegisterLayout(name string, factory LayoutFactory) {
	if name == "" || factory == nil {
		return
	}
	layoutMu.Lock()
	defer layoutMu.Unlock()
	layouts[name] = factory
}

// NewLayoutManager instantiates the named strategy, falling back to the
// built-in simple strategy when the name is empty or unrecognized.
func NewLayoutManager(name string) LayoutManager {
	layoutMu.RLock()
	factory, ok := layouts[name]
	layoutMu.RUnlock()
	if ok {
		return factory()
	}
	if name != "" && name != SimpleLayoutName {
		log.Printf("Layout: strategy %q not found, using %s", name, SimpleLayoutName)
	}
	return NewSimpleLayout()
}
