// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/module.go
// Summary: Module plugin contract and the static constructor registry.
// Usage: Modules register themselves at init time via RegisterModule.

package host

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Producer schedules long-running background work for a module. It receives
// the current producer runtime and a sender for UI commands, and must only
// spawn work on the runtime and return. Producers are replayable: they are
// invoked again with a fresh runtime after every restart and must not
// assume prior in-flight work survived.
type Producer func(rt *Runtime, send chan<- UICommand)

// ModuleFactory builds a module instance. The sender is the only channel
// through which the module may affect layout or registry state.
type ModuleFactory func(send chan<- UICommand) Module

// Module is the plugin contract for compiled-in modules.
type Module interface {
	// Name returns the unique module identifier.
	Name() string

	// Init runs module-specific startup logic. It is invoked exactly once,
	// in load order, after all modules are constructed.
	Init()

	// ParseConfig applies the module's opaque config block. A parse error
	// is logged by the caller and does not stop the host.
	ParseConfig(raw json.RawMessage) error

	RegisterActivity(act *Activity) error
	UnregisterActivity(name string) error
	Activity(name string) (*Activity, bool)
	Activities() []*Activity

	RegisterProducer(p Producer)
	Producers() []Producer
}

// BaseModule supplies the mutex-guarded activity map and producer list
// shared by module implementations. Concrete modules embed it and provide
// Name-specific behaviour on top.
type BaseModule struct {
	name string

	mu         sync.Mutex
	activities map[string]*Activity
	order      []string
	producers  []Producer
}

// NewBaseModule creates the bookkeeping core for a module.
func NewBaseModule(name string) *BaseModule {
	return &BaseModule{
		name:       name,
		activities: make(map[string]*Activity),
	}
}

func (m *BaseModule) Name() string { return m.name }

// Init is a no-op; modules with startup logic shadow it.
func (m *BaseModule) Init() {}

// ParseConfig ignores the block; modules with config shadow it.
func (m *BaseModule) ParseConfig(raw json.RawMessage) error { return nil }

// RegisterActivity records an activity. Identifiers are unique within the
// module.
func (m *BaseModule) RegisterActivity(act *Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := act.Identifier()
	if _, ok := m.activities[id]; ok {
		return fmt.Errorf("activity %q already registered on %s", id, m.name)
	}
	m.activities[id] = act
	m.order = append(m.order, id)
	return nil
}

// UnregisterActivity removes a previously registered activity.
func (m *BaseModule) UnregisterActivity(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activities[name]; !ok {
		return fmt.Errorf("activity %q not registered on %s", name, m.name)
	}
	delete(m.activities, name)
	for i, id := range m.order {
		if id == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Activity looks up a registered activity by identifier.
func (m *BaseModule) Activity(name string) (*Activity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	act, ok := m.activities[name]
	return act, ok
}

// Activities returns the registered activities in registration order.
func (m *BaseModule) Activities() []*Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Activity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.activities[id])
	}
	return out
}

// RegisterProducer appends a producer to the module's producer list. The
// list is replayed against the new runtime on every restart.
func (m *BaseModule) RegisterProducer(p Producer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.producers = append(m.producers, p)
}

// Producers returns a copy of the registered producer list.
func (m *BaseModule) Producers() []Producer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Producer(nil), m.producers...)
}

type moduleEntry struct {
	name    string
	factory ModuleFactory
}

var (
	builtInMu      sync.RWMutex
	builtInModules []moduleEntry
)

// RegisterModule registers a compiled-in module constructor. Registration
// order is the load order for the "all" sentinel.
func RegisterModule(name string, factory ModuleFactory) {
	if name == "" || factory == nil {
		return
	}
	builtInMu.Lock()
	defer builtInMu.Unlock()
	for i, entry := range builtInModules {
		if entry.name == name {
			builtInModules[i].factory = factory
			return
		}
	}
	builtInModules = append(builtInModules, moduleEntry{name: name, factory: factory})
}

func registeredModules() []moduleEntry {
	builtInMu.RLock()
	defer builtInMu.RUnlock()
	return append([]moduleEntry(nil), builtInModules...)
}

func moduleFactoryFor(name string) (ModuleFactory, bool) {
	builtInMu.RLock()
	defer builtInMu.RUnlock()
	for _, entry := range builtInModules {
		if entry.name == name {
			return entry.factory, true
		}
	}
	return nil, false
}
