// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/widget.go
// Summary: Widget rendering contract and the styled activity wrapper.

package host

import (
	"sync"

	"github.com/framegrace/islet/config"
	"github.com/gdamore/tcell/v2"

	texelcore "github.com/framegrace/texelui/core"
)

// Widget is the rendering contract for activity visuals. The host never
// draws; it hands buffers of cells to the layout container, which composes
// them into a single root buffer.
type Widget interface {
	Render() [][]texelcore.Cell
	Resize(cols, rows int)
	SetRefreshNotifier(refresh chan<- bool)
}

// Activity is one visual unit contributed by a module. It couples a widget
// with the activity-level style attributes derived from the global style
// config.
type Activity struct {
	id     string
	widget Widget

	mu          sync.RWMutex
	minWidth    int
	minHeight   int
	blurRadius  float64
	dragStretch bool
}

// NewActivity wraps a widget as an activity with the given identifier. The
// identifier must be unique within the owning module.
func NewActivity(id string, w Widget) *Activity {
	return &Activity{id: id, widget: w}
}

// Identifier returns the activity identifier.
func (a *Activity) Identifier() string { return a.id }

// Widget returns the activity's visual widget.
func (a *Activity) Widget() Widget { return a.widget }

// ApplyStyle applies the global style settings to this activity.
func (a *Activity) ApplyStyle(style config.GeneralStyle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.minWidth = style.MinimalWidth
	a.minHeight = style.MinimalHeight
	a.blurRadius = style.BlurRadius
	a.dragStretch = style.EnableDragStretch
}

// MinimalSize returns the minimal width and height for the activity.
func (a *Activity) MinimalSize() (int, int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.minWidth, a.minHeight
}

// BlurRadius returns the configured blur radius.
func (a *Activity) BlurRadius() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.blurRadius
}

// DragStretch reports whether drag-stretch is enabled for the activity.
func (a *Activity) DragStretch() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dragStretch
}

// NewBuffer allocates a blank cell buffer of the given size.
func NewBuffer(width, height int) [][]texelcore.Cell {
	buf := make([][]texelcore.Cell, height)
	for y := range buf {
		buf[y] = make([]texelcore.Cell, width)
		for x := range buf[y] {
			buf[y][x] = texelcore.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return buf
}

// Blit copies src into dst at the given offset, clipping to dst bounds.
func Blit(dst, src [][]texelcore.Cell, x, y int) {
	for sy := range src {
		dy := y + sy
		if dy < 0 || dy >= len(dst) {
			continue
		}
		row := dst[dy]
		for sx := range src[sy] {
			dx := x + sx
			if dx < 0 || dx >= len(row) {
				continue
			}
			row[dx] = src[sy][sx]
		}
	}
}
