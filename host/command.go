// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/command.go
// Summary: Command types drained by the UI and backend command loops.

package host

// UICommand is a request sent by modules and producers to the UI command
// loop. Commands are processed strictly in arrival order; senders never
// block on processing.
type UICommand interface {
	isUICommand()
}

// AddProducer registers a producer on its owning module and invokes it once
// with the current producer runtime handle.
type AddProducer struct {
	Module   string
	Producer Producer
}

// AddActivity inserts an activity into the active layout, applies the
// current global style, and registers it on its owning module. Layout
// insertion happens before module registration.
type AddActivity struct {
	Module   string
	Activity *Activity
}

// RemoveActivity removes an activity from the layout and unregisters it
// from its owning module. Removal of an already-gone activity is a no-op.
type RemoveActivity struct {
	Module string
	Name   string
}

func (AddProducer) isUICommand()    {}
func (AddActivity) isUICommand()    {}
func (RemoveActivity) isUICommand() {}

// BackendCommand is a request drained by the backend command loop.
type BackendCommand int

const (
	// ReloadConfig runs the full reload pipeline. Filesystem events simply
	// re-enqueue this value; the loop drains them one at a time.
	ReloadConfig BackendCommand = iota
)
