// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/watcher.go
// Summary: Config directory watcher feeding the backend command loop.

package host

import (
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// StartWatcher watches the config directory and enqueues a ReloadConfig
// command for every create or modify event. Other event kinds are ignored.
// A watcher that cannot be started is an infrastructure failure: without
// it the host loses timely reload capability.
func (a *App) StartWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start config watcher: %w", err)
	}
	if err := watcher.Add(a.configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir %s: %w", a.configDir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-a.quit:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
					// Runs on the watcher's goroutine; Reload never
					// blocks it.
					a.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher: %v", err)
			}
		}
	}()

	log.Printf("Watcher: watching %s", a.configDir)
	return nil
}
