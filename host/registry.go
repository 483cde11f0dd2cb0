// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/registry.go
// Summary: Module registry owning the loaded module instances.
// Usage: Shared by the UI and backend command loops; the mutex is held only
// for map access, never across calls back into module code.

package host

import (
	"log"
	"sync"

	"github.com/framegrace/islet/config"
)

// ModuleRegistry owns the set of loaded modules for the lifetime of the
// host. Module identifiers are unique within the registry.
type ModuleRegistry struct {
	mu      sync.Mutex
	modules map[string]Module
}

// NewModuleRegistry creates an empty registry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{modules: make(map[string]Module)}
}

// Load builds module instances from the static constructor set and records
// them. The sentinel "all" loads every registered constructor in
// registration order; otherwise only the requested names are loaded, in the
// order given, skipping (and logging) names not found in the static set.
// It returns the loaded module identifiers in load order.
func (r *ModuleRegistry) Load(names []string, send chan<- UICommand) []string {
	var order []string

	if containsAll(names) {
		for _, entry := range registeredModules() {
			r.put(entry.name, entry.factory(send))
			order = append(order, entry.name)
		}
	} else {
		for _, name := range names {
			factory, ok := moduleFactoryFor(name)
			if !ok {
				log.Printf("Registry: module %q not found, skipping", name)
				continue
			}
			r.put(name, factory(send))
			order = append(order, name)
		}
	}

	log.Printf("Registry: loaded modules: %v", order)
	return order
}

func containsAll(names []string) bool {
	for _, name := range names {
		if name == config.AllModules {
			return true
		}
	}
	return false
}

func (r *ModuleRegistry) put(name string, mod Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[name] = mod
}

// Get looks up a loaded module by identifier.
func (r *ModuleRegistry) Get(name string) (Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mod, ok := r.modules[name]
	return mod, ok
}

// Count returns the number of loaded modules.
func (r *ModuleRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.modules)
}

// Snapshot returns the loaded modules as a slice. The copy is taken under
// the lock and the lock released before the caller touches module code.
func (r *ModuleRegistry) Snapshot() []Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Module, 0, len(r.modules))
	for _, mod := range r.modules {
		out = append(out, mod)
	}
	return out
}

// InitAll invokes each module's init hook in the recorded load order. This
// is the only place module startup logic runs; a panic here is fatal since
// a misbehaving module must not silently degrade the host.
func (r *ModuleRegistry) InitAll(order []string) {
	for _, name := range order {
		mod, ok := r.Get(name)
		if !ok {
			log.Panicf("Registry: init requested for unknown module %q", name)
		}
		mod.Init()
	}
}
