// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modules/clock/clock.go
// Summary: Built-in clock module contributing a single time activity.

package clock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/islet/host"

	texelcore "github.com/framegrace/texelui/core"
)

// ModuleName identifies the clock module in the registry and config.
const ModuleName = "clock"

const activityID = "clock.time"

type clockConfig struct {
	// Format is a Go time layout string.
	Format string `json:"format"`
}

type clockModule struct {
	*host.BaseModule
	send chan<- host.UICommand

	cfgMu  sync.RWMutex
	cfg    clockConfig
	widget *clockWidget
}

// New constructs the clock module.
func New(send chan<- host.UICommand) host.Module {
	return &clockModule{
		BaseModule: host.NewBaseModule(ModuleName),
		send:       send,
		cfg:        clockConfig{Format: "15:04:05"},
	}
}

// Init contributes the time activity and its ticker producer.
func (m *clockModule) Init() {
	m.widget = newClockWidget()
	m.widget.update(time.Now(), m.format())

	m.send <- host.AddActivity{
		Module:   ModuleName,
		Activity: host.NewActivity(activityID, m.widget),
	}
	m.send <- host.AddProducer{Module: ModuleName, Producer: m.produce}
}

// ParseConfig applies the module's opaque config block.
func (m *clockModule) ParseConfig(raw json.RawMessage) error {
	var cfg clockConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return err
	}
	m.cfgMu.Lock()
	defer m.cfgMu.Unlock()
	if cfg.Format != "" {
		m.cfg.Format = cfg.Format
	}
	return nil
}

func (m *clockModule) format() string {
	m.cfgMu.RLock()
	defer m.cfgMu.RUnlock()
	return m.cfg.Format
}

// produce runs on every runtime generation. It only re-establishes the
// ticker task; the widget carries the state across restarts.
func (m *clockModule) produce(rt *host.Runtime, send chan<- host.UICommand) {
	w := m.widget
	rt.Spawn(func(ctx context.Context) {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		w.update(time.Now(), m.format())
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				w.update(now, m.format())
			}
		}
	})
}

// clockWidget renders the current time centered in its area.
type clockWidget struct {
	mu      sync.RWMutex
	width   int
	height  int
	text    string
	refresh chan<- bool
}

func newClockWidget() *clockWidget {
	return &clockWidget{}
}

func (w *clockWidget) update(now time.Time, format string) {
	w.mu.Lock()
	w.text = fmt.Sprintf("Time: %s", now.Format(format))
	refresh := w.refresh
	w.mu.Unlock()

	if refresh != nil {
		select {
		case refresh <- true:
		default:
		}
	}
}

func (w *clockWidget) Resize(cols, rows int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = cols, rows
}

func (w *clockWidget) SetRefreshNotifier(refresh chan<- bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refresh = refresh
}

func (w *clockWidget) Render() [][]texelcore.Cell {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.width <= 0 || w.height <= 0 {
		return [][]texelcore.Cell{}
	}

	buf := host.NewBuffer(w.width, w.height)
	style := tcell.StyleDefault.Foreground(tcell.PaletteColor(6))

	y := w.height / 2
	x := (w.width - runewidth.StringWidth(w.text)) / 2
	if x < 0 {
		x = 0
	}
	col := x
	for _, ch := range w.text {
		if col >= w.width {
			break
		}
		buf[y][col] = texelcore.Cell{Ch: ch, Style: style}
		col += runewidth.RuneWidth(ch)
	}
	return buf
}
