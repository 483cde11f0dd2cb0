// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: storage/history.go
// Summary: SQLite-backed store of the last successfully parsed config.
// Usage: The backend loop saves each valid document; startup consults the
// newest entry when the on-disk file is corrupt.

package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/islet/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS config_history (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	saved_at INTEGER NOT NULL,
	document TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_config_history_saved_at
	ON config_history(saved_at);
`

// keepEntries bounds how many historical documents are retained.
const keepEntries = 20

// History records successfully parsed configuration documents.
type History struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Save appends the document and prunes old entries.
func (h *History) Save(cfg config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.db.Exec(
		`INSERT INTO config_history (saved_at, document) VALUES (?, ?)`,
		time.Now().Unix(), string(data),
	); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	_, err = h.db.Exec(
		`DELETE FROM config_history WHERE id NOT IN
			(SELECT id FROM config_history ORDER BY id DESC LIMIT ?)`,
		keepEntries,
	)
	if err != nil {
		return fmt.Errorf("prune config history: %w", err)
	}
	return nil
}

// LastValid returns the newest stored document, if any.
func (h *History) LastValid() (config.Config, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var doc string
	err := h.db.QueryRow(
		`SELECT document FROM config_history ORDER BY id DESC LIMIT 1`,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return config.Config{}, false, nil
	}
	if err != nil {
		return config.Config{}, false, fmt.Errorf("load config history: %w", err)
	}

	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		return config.Config{}, false, fmt.Errorf("parse stored config: %w", err)
	}
	return cfg, true, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.Close()
}
