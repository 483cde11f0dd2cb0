// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/layout_simple_test.go
// Summary: Built-in simple layout tests.

package host

import (
	"encoding/json"
	"testing"

	"github.com/framegrace/islet/config"
)

func styledActivity(id string, minHeight int) *Activity {
	act := NewActivity(id, &fakeWidget{})
	style := config.DefaultStyle()
	style.MinimalHeight = minHeight
	act.ApplyStyle(style)
	return act
}

func TestSimpleLayoutAddRemove(t *testing.T) {
	l := NewSimpleLayout().(*SimpleLayout)

	l.AddActivity(styledActivity("one", 2))
	l.AddActivity(styledActivity("two", 2))
	if l.ActivityCount() != 2 {
		t.Fatalf("expected 2 activities, got %d", l.ActivityCount())
	}

	l.RemoveActivity("one")
	if l.ActivityCount() != 1 {
		t.Fatalf("expected 1 activity after removal, got %d", l.ActivityCount())
	}

	l.RemoveActivity("one") // already gone, no-op
	if l.ActivityCount() != 1 {
		t.Fatalf("repeat removal changed count to %d", l.ActivityCount())
	}
}

func TestSimpleLayoutRenderDimensions(t *testing.T) {
	l := NewSimpleLayout().(*SimpleLayout)
	l.Resize(20, 10)
	l.AddActivity(styledActivity("a", 3))
	l.AddActivity(styledActivity("b", 3))

	buf := l.Render()
	if len(buf) != 10 || len(buf[0]) != 20 {
		t.Fatalf("unexpected buffer dimensions: %dx%d", len(buf), len(buf[0]))
	}
}

func TestSimpleLayoutParseConfigGap(t *testing.T) {
	l := NewSimpleLayout().(*SimpleLayout)
	if err := l.ParseConfig(json.RawMessage(`{"gap": 2}`)); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if l.gap != 2 {
		t.Fatalf("expected gap 2, got %d", l.gap)
	}

	if err := l.ParseConfig(json.RawMessage(`{"gap": `)); err == nil {
		t.Fatal("expected error for truncated config")
	}
}

func TestSimpleLayoutStretchFillsLeftover(t *testing.T) {
	l := NewSimpleLayout().(*SimpleLayout)
	l.Resize(20, 10)

	w := &fakeWidget{}
	stretchy := NewActivity("stretchy", w)
	style := config.DefaultStyle()
	style.MinimalHeight = 3
	style.EnableDragStretch = true
	stretchy.ApplyStyle(style)

	l.AddActivity(styledActivity("fixed", 3))
	l.AddActivity(stretchy)
	l.Render()

	if w.height != 7 {
		t.Fatalf("expected stretch-enabled activity to absorb leftover, got height %d", w.height)
	}
}

func TestSimpleLayoutShadesGapBelowSoftenedActivity(t *testing.T) {
	l := NewSimpleLayout().(*SimpleLayout)
	l.Resize(8, 8)
	if err := l.ParseConfig(json.RawMessage(`{"gap": 1}`)); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	// The default style carries a positive blur radius; the second
	// activity opts out.
	hard := NewActivity("hard", &fakeWidget{})
	style := config.DefaultStyle()
	style.MinimalHeight = 2
	style.BlurRadius = 0
	hard.ApplyStyle(style)

	l.AddActivity(styledActivity("soft", 2))
	l.AddActivity(hard)
	buf := l.Render()

	if buf[2][0].Ch != '░' {
		t.Fatalf("expected shaded gap below softened activity, got %q", buf[2][0].Ch)
	}
	if buf[5][0].Ch != ' ' {
		t.Fatalf("expected plain gap below opted-out activity, got %q", buf[5][0].Ch)
	}
}

func TestSimpleLayoutRenderEmptyWhenUnsized(t *testing.T) {
	l := NewSimpleLayout().(*SimpleLayout)
	l.AddActivity(styledActivity("a", 3))
	if got := l.Render(); len(got) != 0 {
		t.Fatalf("expected empty render before resize, got %d rows", len(got))
	}
}
