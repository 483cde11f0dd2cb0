// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/watcher_test.go
// Summary: Filesystem watcher to reload pipeline integration test.

package host

import (
	"testing"
)

func TestWatcherTriggersReload(t *testing.T) {
	mod := newReplayModule("watch-mod")
	RegisterModule("watch-mod", func(send chan<- UICommand) Module { return mod })

	cfg := testConfigFor("watch-mod")
	app := newTestApp(t, cfg)
	if err := app.StartWatcher(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	app.Commands() <- AddProducer{Module: "watch-mod", Producer: mod.produce}
	waitFor(t, "initial producer invocation", func() bool { return mod.invocations() == 1 })

	// A modify event on the config file must run the reload pipeline,
	// which replays the producer on a fresh generation.
	cfg.GeneralStyle.MinimalHeight = 5
	writeTestConfig(t, app.configDir, cfg)

	waitFor(t, "watcher-triggered reload", func() bool { return mod.invocations() >= 2 })
	waitFor(t, "new config active", func() bool {
		return app.currentConfig().GeneralStyle.MinimalHeight == 5
	})
}

func TestWatcherMissingDirFails(t *testing.T) {
	app := New(Options{ConfigDir: "/nonexistent/islet-test-dir"})
	if err := app.StartWatcher(); err == nil {
		t.Fatal("expected error watching missing directory")
	}
}
