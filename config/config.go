// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Persisted host configuration document (islet.json).

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// AllModules is the loaded-modules sentinel meaning "every available
// module".
const AllModules = "all"

// DefaultLayout is the layout strategy used when none is configured.
const DefaultLayout = "simple"

// Config is the host configuration document. Module and layout blocks are
// opaque; they are routed unvalidated to the owning module or layout.
type Config struct {
	LoadedModules []string                   `json:"loadedModules"`
	Layout        string                     `json:"layout"`
	GeneralStyle  GeneralStyle               `json:"generalStyle"`
	ModuleConfig  map[string]json.RawMessage `json:"moduleConfig"`
	LayoutConfig  map[string]json.RawMessage `json:"layoutConfig"`
}

// GeneralStyle holds the global style settings applied to every activity.
type GeneralStyle struct {
	MinimalHeight     int     `json:"minimalHeight"`
	MinimalWidth      int     `json:"minimalWidth"`
	BlurRadius        float64 `json:"blurRadius"`
	EnableDragStretch bool    `json:"enableDragStretch"`
}

// DefaultStyle returns the default global style settings.
func DefaultStyle() GeneralStyle {
	return GeneralStyle{
		MinimalHeight:     3,
		MinimalWidth:      20,
		BlurRadius:        6.0,
		EnableDragStretch: false,
	}
}

// Default returns the default document: all modules, default layout,
// default style, empty opaque blocks.
func Default() Config {
	return Config{
		LoadedModules: []string{AllModules},
		Layout:        DefaultLayout,
		GeneralStyle:  DefaultStyle(),
		ModuleConfig:  make(map[string]json.RawMessage),
		LayoutConfig:  make(map[string]json.RawMessage),
	}
}

// Load reads and parses the document at path. On failure it returns the
// default document along with the error; the caller decides whether to
// substitute it or keep previously active state.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a document. Missing fields keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if cfg.LoadedModules == nil {
		cfg.LoadedModules = []string{AllModules}
	}
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}
	if cfg.ModuleConfig == nil {
		cfg.ModuleConfig = make(map[string]json.RawMessage)
	}
	if cfg.LayoutConfig == nil {
		cfg.LayoutConfig = make(map[string]json.RawMessage)
	}
	return cfg, nil
}

// Marshal encodes the document for persistence.
func (c Config) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
