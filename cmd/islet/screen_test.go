// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/islet/screen_test.go
// Summary: Render loop presentation tests against a simulation screen.

package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/islet/host"

	texelcore "github.com/framegrace/texelui/core"
)

type bannerWidget struct {
	width, height int
	text          string
}

func (w *bannerWidget) Render() [][]texelcore.Cell {
	if w.width <= 0 || w.height <= 0 {
		return [][]texelcore.Cell{}
	}
	buf := host.NewBuffer(w.width, w.height)
	col := 0
	for _, ch := range w.text {
		if col >= w.width {
			break
		}
		buf[0][col] = texelcore.Cell{Ch: ch, Style: tcell.StyleDefault}
		col++
	}
	return buf
}

func (w *bannerWidget) Resize(cols, rows int) { w.width, w.height = cols, rows }

func (w *bannerWidget) SetRefreshNotifier(refresh chan<- bool) {}

func TestDrawPresentsRootBuffer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 6)

	root := &bannerWidget{text: "islet up"}
	root.Resize(20, 6)
	draw(screen, root, nil)

	if got := readScreenLine(screen, 0, 0, 20); got != "islet up" {
		t.Fatalf("expected banner on screen, got %q", got)
	}
	if got := readScreenLine(screen, 0, 1, 20); got != "" {
		t.Fatalf("expected blank row below banner, got %q", got)
	}
}

func TestThemeColorParsesHex(t *testing.T) {
	c, ok := themeColor("#ff5733")
	if !ok {
		t.Fatal("expected hex color to parse")
	}
	r, g, b := c.RGB()
	if r != 255 || g != 87 || b != 51 {
		t.Fatalf("unexpected RGB (%d, %d, %d)", r, g, b)
	}

	for _, bad := range []interface{}{"", "red", "#12", 7, nil} {
		if _, ok := themeColor(bad); ok {
			t.Fatalf("expected %v to be rejected", bad)
		}
	}
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes = append(runes, ch)
	}
	return strings.TrimRight(string(runes), " ")
}
