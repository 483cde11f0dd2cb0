// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modules/clock/clock_test.go
// Summary: Clock module and widget tests.

package clock

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/framegrace/islet/host"
)

func TestClockWidgetRenderDimensions(t *testing.T) {
	w := newClockWidget()
	w.update(time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC), "15:04:05")
	w.Resize(30, 3)

	buf := w.Render()
	if len(buf) != 3 || len(buf[0]) != 30 {
		t.Fatalf("unexpected buffer dimensions: %dx%d", len(buf), len(buf[0]))
	}

	var row strings.Builder
	for _, cell := range buf[1] {
		row.WriteRune(cell.Ch)
	}
	if !strings.Contains(row.String(), "Time: 10:30:00") {
		t.Fatalf("time not rendered: %q", row.String())
	}
}

func TestClockParseConfig(t *testing.T) {
	m := New(make(chan host.UICommand, 4)).(*clockModule)

	if err := m.ParseConfig(json.RawMessage(`{"format": "15:04"}`)); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if m.format() != "15:04" {
		t.Fatalf("unexpected format: %s", m.format())
	}

	if err := m.ParseConfig(json.RawMessage(`{"format"`)); err == nil {
		t.Fatal("expected error for truncated config")
	}
	if m.format() != "15:04" {
		t.Fatalf("failed parse changed format to %s", m.format())
	}

	// An empty format keeps the previous one.
	if err := m.ParseConfig(json.RawMessage(`{}`)); err != nil {
		t.Fatalf("parse empty config: %v", err)
	}
	if m.format() != "15:04" {
		t.Fatalf("empty block changed format to %s", m.format())
	}
}

func TestClockInitContributesActivityAndProducer(t *testing.T) {
	send := make(chan host.UICommand, 4)
	m := New(send).(*clockModule)
	m.Init()

	first := <-send
	add, ok := first.(host.AddActivity)
	if !ok {
		t.Fatalf("expected AddActivity first, got %T", first)
	}
	if add.Module != ModuleName || add.Activity.Identifier() != activityID {
		t.Fatalf("unexpected activity command: %+v", add)
	}

	second := <-send
	if _, ok := second.(host.AddProducer); !ok {
		t.Fatalf("expected AddProducer second, got %T", second)
	}
}
