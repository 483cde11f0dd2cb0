// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/helpers_test.go
// Summary: Shared fakes and harness helpers for host tests.

package host

import (
	"os"
	"testing"
	"time"

	"github.com/framegrace/islet/config"

	texelcore "github.com/framegrace/texelui/core"
)

// fakeWidget is a minimal Widget for registry and layout tests.
type fakeWidget struct {
	width, height int
}

func (w *fakeWidget) Render() [][]texelcore.Cell {
	if w.width <= 0 || w.height <= 0 {
		return [][]texelcore.Cell{}
	}
	return NewBuffer(w.width, w.height)
}

func (w *fakeWidget) Resize(cols, rows int) { w.width, w.height = cols, rows }

func (w *fakeWidget) SetRefreshNotifier(refresh chan<- bool) {}

// fakeModule is a Module with no startup behaviour of its own.
type fakeModule struct {
	*BaseModule
	send chan<- UICommand
}

func newFakeModule(name string) ModuleFactory {
	return func(send chan<- UICommand) Module {
		return &fakeModule{BaseModule: NewBaseModule(name), send: send}
	}
}

// newTestApp writes a config document listing the given modules into a
// temp dir and returns an initialized App with a short settle delay.
func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()

	dir := t.TempDir()
	writeTestConfig(t, dir, cfg)

	app := New(Options{ConfigDir: dir, Settle: time.Millisecond})
	if err := app.Initialize(); err != nil {
		t.Fatalf("initialize app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func writeTestConfig(t *testing.T, dir string, cfg config.Config) {
	t.Helper()
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(config.FilePath(dir), data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
