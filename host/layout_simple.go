// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/layout_simple.go
// Summary: Built-in vertical-strip layout, the default strategy.

package host

import (
	"encoding/json"
	"sync"

	"github.com/gdamore/tcell/v2"

	texelcore "github.com/framegrace/texelui/core"
)

// SimpleLayoutName is the built-in default strategy name.
const SimpleLayoutName = "simple"

type simpleLayoutConfig struct {
	Gap int `json:"gap"`
}

// SimpleLayout stacks activities vertically, each sized to its minimal
// height, separated by a configurable gap. Stretch-enabled activities
// absorb whatever vertical space is left; activities with a blur radius
// get a shaded backdrop in the gap below them.
type SimpleLayout struct {
	mu      sync.Mutex
	width   int
	height  int
	gap     int
	acts    []*Activity
	refresh chan<- bool
}

// NewSimpleLayout creates the built-in vertical-strip layout.
func NewSimpleLayout() LayoutManager {
	return &SimpleLayout{}
}

func init() {
	RegisterLayout(SimpleLayoutName, NewSimpleLayout)
}

func (l *SimpleLayout) Name() string { return SimpleLayoutName }

// ParseConfig applies the strategy's opaque config block.
func (l *SimpleLayout) ParseConfig(raw json.RawMessage) error {
	var cfg simpleLayoutConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	l.gap = cfg.Gap
	return nil
}

// Root returns the container widget; the layout is its own container.
func (l *SimpleLayout) Root() Widget { return l }

// AddActivity appends the activity to the strip.
func (l *SimpleLayout) AddActivity(act *Activity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acts = append(l.acts, act)
	if l.refresh != nil {
		act.Widget().SetRefreshNotifier(l.refresh)
	}
}

// RemoveActivity removes the activity with the given identifier, if
// present.
func (l *SimpleLayout) RemoveActivity(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, act := range l.acts {
		if act.Identifier() == id {
			l.acts = append(l.acts[:i], l.acts[i+1:]...)
			return
		}
	}
}

// ActivityCount reports how many activities the strip currently holds.
func (l *SimpleLayout) ActivityCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.acts)
}

// Resize stores the container dimensions.
func (l *SimpleLayout) Resize(cols, rows int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.width, l.height = cols, rows
}

// SetRefreshNotifier forwards the notifier to current and future widgets.
func (l *SimpleLayout) SetRefreshNotifier(refresh chan<- bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refresh = refresh
	for _, act := range l.acts {
		act.Widget().SetRefreshNotifier(refresh)
	}
}

// Render composes the activity buffers into one vertical strip.
func (l *SimpleLayout) Render() [][]texelcore.Cell {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.width <= 0 || l.height <= 0 {
		return [][]texelcore.Cell{}
	}

	heights := l.rowHeights()
	buf := NewBuffer(l.width, l.height)
	y := 0
	for i, act := range l.acts {
		if y >= l.height {
			break
		}
		h := heights[i]
		if y+h > l.height {
			h = l.height - y
		}
		act.Widget().Resize(l.width, h)
		Blit(buf, act.Widget().Render(), 0, y)
		y += h
		if l.gap > 0 && act.BlurRadius() > 0 {
			l.shadeRows(buf, y, l.gap)
		}
		y += l.gap
	}
	return buf
}

// rowHeights sizes each activity at its minimal height, then splits the
// leftover vertical space among stretch-enabled activities.
func (l *SimpleLayout) rowHeights() []int {
	heights := make([]int, len(l.acts))
	used := 0
	var stretch []int
	for i, act := range l.acts {
		_, minH := act.MinimalSize()
		if minH <= 0 {
			minH = 1
		}
		heights[i] = minH
		used += minH
		if act.DragStretch() {
			stretch = append(stretch, i)
		}
	}
	if len(l.acts) > 1 {
		used += l.gap * (len(l.acts) - 1)
	}
	leftover := l.height - used
	if leftover > 0 && len(stretch) > 0 {
		share := leftover / len(stretch)
		for _, i := range stretch {
			heights[i] += share
		}
		heights[stretch[len(stretch)-1]] += leftover % len(stretch)
	}
	return heights
}

// shadeRows fills gap rows with a dim backdrop under softened activities.
func (l *SimpleLayout) shadeRows(buf [][]texelcore.Cell, y, n int) {
	style := tcell.StyleDefault.Dim(true)
	for row := y; row < y+n && row < l.height; row++ {
		for x := 0; x < l.width; x++ {
			buf[row][x] = texelcore.Cell{Ch: '░', Style: style}
		}
	}
}
