// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/islet/screen.go
// Summary: Terminal render loop presenting the layout root widget.
// Usage: runScreen owns the tcell screen until quit; redraws are driven by
// widget refresh notifications and resize events.

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/islet/host"
	"github.com/framegrace/islet/theming"
)

// Larger buffer keeps fast-ticking widgets from blocking on notify.
const refreshQueueSize = 64

func runScreen(app *host.App) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen failed: %w", err)
	}
	screen.HideCursor()
	defer screen.Fini()

	root := app.Root()
	cols, rows := screen.Size()
	root.Resize(cols, rows)

	refresh := make(chan bool, refreshQueueSize)
	root.SetRefreshNotifier(refresh)

	events := make(chan tcell.Event, 32)
	stopEvents := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-stopEvents:
				close(events)
				return
			}
		}
	}()
	defer func() {
		close(stopEvents)
		screen.PostEventWait(tcell.NewEventInterrupt(nil))
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM)

	draw(screen, root, app.Themes())

	for {
		select {
		case <-refresh:
			// Drain pending signals to avoid rendering stale frames.
		drainLoop:
			for {
				select {
				case <-refresh:
				default:
					break drainLoop
				}
			}
			draw(screen, root, app.Themes())
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				cols, rows := e.Size()
				root.Resize(cols, rows)
				screen.Sync()
				draw(screen, root, app.Themes())
			case *tcell.EventKey:
				if e.Key() == tcell.KeyCtrlC || e.Key() == tcell.KeyEscape {
					log.Printf("islet: shutting down")
					return nil
				}
			}
		case <-sig:
			log.Printf("islet: shutting down")
			return nil
		}
	}
}

// draw fills the screen with the themed desktop style, then blits the root
// widget's buffer on top.
func draw(screen tcell.Screen, root host.Widget, themes *theming.Engine) {
	screen.Fill(' ', desktopStyle(themes))
	for y, row := range root.Render() {
		for x, cell := range row {
			screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	screen.Show()
}

// desktopStyle derives the background fill from the installed theme's
// desktop section.
func desktopStyle(themes *theming.Engine) tcell.Style {
	style := tcell.StyleDefault
	if themes == nil {
		return style
	}
	desktop, ok := themes.Current()["desktop"]
	if !ok {
		return style
	}
	if fg, ok := themeColor(desktop["default_fg"]); ok {
		style = style.Foreground(fg)
	}
	if bg, ok := themeColor(desktop["default_bg"]); ok {
		style = style.Background(bg)
	}
	return style
}

func themeColor(value interface{}) (tcell.Color, bool) {
	s, ok := value.(string)
	if !ok || len(s) != 7 || s[0] != '#' {
		return tcell.ColorDefault, false
	}
	rgb, err := strconv.ParseInt(s[1:], 16, 32)
	if err != nil {
		return tcell.ColorDefault, false
	}
	r := int32((rgb >> 16) & 0xFF)
	g := int32((rgb >> 8) & 0xFF)
	b := int32(rgb & 0xFF)
	return tcell.NewRGBColor(r, g, b), true
}
