// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theming/theming.go
// Summary: Theme pipeline layering user overrides over the baseline theme.
// Usage: The host recompiles the theme on every reload; a compile failure
// keeps the previously installed theme.

package theming

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/framegrace/texelui/theme"
)

// Engine owns the installed theme. The baseline (texelui defaults) is
// always present; a successfully compiled user theme file is installed
// above it.
type Engine struct {
	mu       sync.RWMutex
	baseline theme.Config
	current  theme.Config
	path     string
}

// NewEngine builds the baseline theme and prepares to compile the user
// theme file at path.
func NewEngine(path string) *Engine {
	base := theme.Get()
	if err := theme.Err(); err != nil {
		log.Printf("Theming: failed to load base theme, using defaults: %v", err)
	}
	theme.ApplyDefaults(base)
	return &Engine{
		baseline: base,
		current:  base,
		path:     path,
	}
}

// Current returns the installed theme.
func (e *Engine) Current() theme.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Reload recompiles the user theme file and installs the result. Any load
// or parse failure, a deleted file included, leaves the previously
// installed theme untouched; before any install that is the baseline.
func (e *Engine) Reload() {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Theming: failed to read theme file, keeping previous: %v", err)
		}
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Theming: failed to parse theme file, keeping previous: %v", err)
		return
	}

	overrides := theme.ParseOverrides(raw)
	compiled := theme.WithOverrides(e.baseline, overrides)

	e.mu.Lock()
	e.current = compiled
	e.mu.Unlock()
	log.Printf("Theming: installed theme from %s", e.path)
}
