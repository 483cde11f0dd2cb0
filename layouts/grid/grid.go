// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layouts/grid/grid.go
// Summary: Grid layout strategy with a configurable column count.

package grid

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/framegrace/islet/host"

	texelcore "github.com/framegrace/texelui/core"
)

// LayoutName identifies the grid strategy in the registry and config.
const LayoutName = "grid"

type gridConfig struct {
	Columns int `json:"columns"`
}

// gridLayout arranges activities left to right, top to bottom, in rows of
// a fixed column count. Row height is the tallest minimal height in the
// row.
type gridLayout struct {
	mu      sync.Mutex
	width   int
	height  int
	columns int
	acts    []*host.Activity
	refresh chan<- bool
}

// New constructs the grid layout strategy.
func New() host.LayoutManager {
	return &gridLayout{columns: 2}
}

func init() {
	host.RegisterLayout(LayoutName, New)
}

func (l *gridLayout) Name() string { return LayoutName }

// ParseConfig applies the strategy's opaque config block.
func (l *gridLayout) ParseConfig(raw json.RawMessage) error {
	var cfg gridConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return err
	}
	if cfg.Columns < 1 {
		return fmt.Errorf("grid layout: columns must be at least 1, got %d", cfg.Columns)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.columns = cfg.Columns
	return nil
}

func (l *gridLayout) Root() host.Widget { return l }

func (l *gridLayout) AddActivity(act *host.Activity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acts = append(l.acts, act)
	if l.refresh != nil {
		act.Widget().SetRefreshNotifier(l.refresh)
	}
}

func (l *gridLayout) RemoveActivity(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, act := range l.acts {
		if act.Identifier() == id {
			l.acts = append(l.acts[:i], l.acts[i+1:]...)
			return
		}
	}
}

// Columns reports the configured column count.
func (l *gridLayout) Columns() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.columns
}

func (l *gridLayout) Resize(cols, rows int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.width, l.height = cols, rows
}

func (l *gridLayout) SetRefreshNotifier(refresh chan<- bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refresh = refresh
	for _, act := range l.acts {
		act.Widget().SetRefreshNotifier(refresh)
	}
}

// Render composes the activity buffers row by row.
func (l *gridLayout) Render() [][]texelcore.Cell {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.width <= 0 || l.height <= 0 {
		return [][]texelcore.Cell{}
	}

	buf := host.NewBuffer(l.width, l.height)
	cellWidth := l.width / l.columns
	if cellWidth < 1 {
		cellWidth = 1
	}

	y := 0
	for row := 0; row*l.columns < len(l.acts); row++ {
		if y >= l.height {
			break
		}
		start := row * l.columns
		end := start + l.columns
		if end > len(l.acts) {
			end = len(l.acts)
		}

		rowHeight := 1
		for _, act := range l.acts[start:end] {
			if _, minH := act.MinimalSize(); minH > rowHeight {
				rowHeight = minH
			}
		}
		if y+rowHeight > l.height {
			rowHeight = l.height - y
		}

		for col, act := range l.acts[start:end] {
			act.Widget().Resize(cellWidth, rowHeight)
			host.Blit(buf, act.Widget().Render(), col*cellWidth, y)
		}
		y += rowHeight
	}
	return buf
}
