// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for islet configuration files.

package config

import (
	"os"
	"path/filepath"
)

const (
	configFileName  = "islet.json"
	themeFileName   = "islet.theme.json"
	historyFileName = "history.db"
)

// Root returns the islet configuration directory.
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "islet"), nil
}

// FilePath returns the config document path inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// ThemePath returns the theme source path inside dir.
func ThemePath(dir string) string {
	return filepath.Join(dir, themeFileName)
}

// HistoryPath returns the config history database path inside dir.
func HistoryPath(dir string) string {
	return filepath.Join(dir, historyFileName)
}

// EnsureRoot creates the configuration directory if needed.
func EnsureRoot(dir string) error {
	return os.MkdirAll(dir, 0755)
}
