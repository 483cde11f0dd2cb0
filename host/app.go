// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/app.go
// Summary: Host wiring: command loops, reload pipeline, runtime restarts.
// Usage: cmd/islet creates one App, initializes it, and embeds its root
// widget into the rendering surface.

package host

import (
	"log"
	"sync"
	"time"

	"github.com/framegrace/islet/config"
	"github.com/framegrace/islet/storage"
	"github.com/framegrace/islet/theming"
)

const (
	// reloadSettleDelay gives editors time to finish writing the config
	// file before it is read back.
	reloadSettleDelay = 50 * time.Millisecond

	uiQueueSize      = 256
	backendQueueSize = 16
)

// Options configures a new App.
type Options struct {
	// ConfigDir is the directory holding islet.json and the theme file.
	ConfigDir string

	// Settle overrides the reload settle delay. Zero keeps the default.
	Settle time.Duration

	// History, when set, records each valid config document and supplies
	// the startup fallback for a corrupt file.
	History *storage.History
}

// App is the widget host core. It owns the module registry, the active
// layout, the producer runtime, and the two command loops.
type App struct {
	registry *ModuleRegistry

	layoutMu sync.Mutex
	layout   LayoutManager

	rtMu    sync.Mutex
	runtime *Runtime

	uiCmds      chan UICommand
	backendCmds chan BackendCommand

	cfgMu    sync.Mutex
	cfg      config.Config
	cfgValid bool

	themes  *theming.Engine
	history *storage.History

	configDir string
	settle    time.Duration

	quit      chan struct{}
	closeOnce sync.Once
	loops     sync.WaitGroup
}

// New creates an App. Initialize must be called before use.
func New(opts Options) *App {
	settle := opts.Settle
	if settle <= 0 {
		settle = reloadSettleDelay
	}
	return &App{
		registry:    NewModuleRegistry(),
		uiCmds:      make(chan UICommand, uiQueueSize),
		backendCmds: make(chan BackendCommand, backendQueueSize),
		themes:      theming.NewEngine(config.ThemePath(opts.ConfigDir)),
		history:     opts.History,
		configDir:   opts.ConfigDir,
		settle:      settle,
		quit:        make(chan struct{}),
	}
}

// Initialize loads config, modules and layout, starts the command loops
// and the producer runtime, and runs module init hooks. It returns an
// error only for infrastructure failures; config problems are recovered
// with defaults and logged.
func (a *App) Initialize() error {
	cfg, err := config.Load(config.FilePath(a.configDir))
	if err != nil {
		log.Printf("App: failed to load config, using fallback: %v", err)
		cfg = a.fallbackConfig()
	} else {
		a.markValid()
	}
	a.setConfig(cfg)

	order := a.registry.Load(cfg.LoadedModules, a.uiCmds)

	a.layoutMu.Lock()
	a.layout = NewLayoutManager(cfg.Layout)
	a.layoutMu.Unlock()

	a.parseModuleConfigs()
	a.loadLayoutConfig()
	a.themes.Reload()

	a.rtMu.Lock()
	a.runtime = newRuntime()
	a.rtMu.Unlock()

	a.loops.Add(2)
	go a.runUICommandLoop()
	go a.runBackendLoop()

	a.registry.InitAll(order)
	return nil
}

// Commands returns the sender modules use to affect host state.
func (a *App) Commands() chan<- UICommand { return a.uiCmds }

// Reload enqueues a config reload. Used by the filesystem watcher; safe
// from any goroutine and never blocks: when the queue is full a reload is
// already pending and the new request coalesces with it.
func (a *App) Reload() {
	select {
	case a.backendCmds <- ReloadConfig:
	default:
	}
}

// Registry exposes the module registry.
func (a *App) Registry() *ModuleRegistry { return a.registry }

// Root returns the active layout's container widget.
func (a *App) Root() Widget {
	a.layoutMu.Lock()
	defer a.layoutMu.Unlock()
	return a.layout.Root()
}

// Themes returns the theme engine.
func (a *App) Themes() *theming.Engine { return a.themes }

// Close stops the command loops and shuts down the producer runtime.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		close(a.quit)
		a.loops.Wait()
		a.rtMu.Lock()
		if a.runtime != nil {
			a.runtime.shutdown()
		}
		a.rtMu.Unlock()
	})
}

// runUICommandLoop is the single consumer of the UI command queue.
func (a *App) runUICommandLoop() {
	defer a.loops.Done()
	for {
		select {
		case <-a.quit:
			return
		case cmd := <-a.uiCmds:
			a.handleUICommand(cmd)
		}
	}
}

func (a *App) handleUICommand(cmd UICommand) {
	switch c := cmd.(type) {
	case AddProducer:
		// A producer naming a nonexistent module is a broken module
		// contract, not a recoverable runtime condition.
		mod, ok := a.registry.Get(c.Module)
		if !ok {
			log.Panicf("App: producer targets unknown module %q", c.Module)
		}
		mod.RegisterProducer(c.Producer)

		// The handle is read and the producer invoked under the runtime
		// mutex so a restart cannot retire the handle mid-invocation.
		a.rtMu.Lock()
		c.Producer(a.runtime, a.uiCmds)
		a.rtMu.Unlock()
		log.Printf("App: registered producer on %s", mod.Name())

	case AddActivity:
		mod, ok := a.registry.Get(c.Module)
		if !ok {
			log.Panicf("App: activity targets unknown module %q", c.Module)
		}

		// Layout insertion happens before module registration: by the
		// time the activity is visible in the module map it is already
		// in the layout.
		a.layoutMu.Lock()
		a.layout.AddActivity(c.Activity)
		a.layoutMu.Unlock()

		c.Activity.ApplyStyle(a.currentConfig().GeneralStyle)

		if err := mod.RegisterActivity(c.Activity); err != nil {
			log.Printf("App: register activity on %s: %v", mod.Name(), err)
			return
		}
		log.Printf("App: registered activity %q on %s", c.Activity.Identifier(), mod.Name())

	case RemoveActivity:
		mod, ok := a.registry.Get(c.Module)
		if !ok {
			log.Panicf("App: removal targets unknown module %q", c.Module)
		}

		// Removal races with external state are plausible; a missing
		// activity is logged and skipped.
		act, ok := mod.Activity(c.Name)
		if !ok {
			log.Printf("App: activity %q not found on %s, skipping removal", c.Name, mod.Name())
			return
		}

		a.layoutMu.Lock()
		a.layout.RemoveActivity(act.Identifier())
		a.layoutMu.Unlock()

		if err := mod.UnregisterActivity(c.Name); err != nil {
			log.Printf("App: unregister activity on %s: %v", mod.Name(), err)
		}
	}
}

// runBackendLoop is the single consumer of the backend command queue.
func (a *App) runBackendLoop() {
	defer a.loops.Done()
	for {
		select {
		case <-a.quit:
			return
		case cmd := <-a.backendCmds:
			switch cmd {
			case ReloadConfig:
				a.reload()
			}
		}
	}
}

// reload runs the full pipeline in fixed order: config, styles, layout
// config, theme, producer runtime restart. Widgets reflect the newest
// style before the slower runtime restart happens.
func (a *App) reload() {
	// Reading immediately after a filesystem event sometimes returns a
	// half-written file.
	time.Sleep(a.settle)

	a.loadConfigs()
	a.updateGeneralStyle()
	a.loadLayoutConfig()
	a.themes.Reload()
	a.restartProducerRuntime()
	a.persistConfig()
}

// loadConfigs re-reads the document and routes opaque blocks to modules.
// An unparsable document keeps the previously active configuration.
func (a *App) loadConfigs() {
	cfg, err := config.Load(config.FilePath(a.configDir))
	if err != nil {
		if a.hasValidConfig() {
			log.Printf("App: failed to reload config, keeping active one: %v", err)
		} else {
			log.Printf("App: failed to load config, using fallback: %v", err)
			a.setConfig(a.fallbackConfig())
		}
	} else {
		a.setConfig(cfg)
		a.markValid()
	}

	a.parseModuleConfigs()
}

func (a *App) parseModuleConfigs() {
	cfg := a.currentConfig()
	for _, mod := range a.registry.Snapshot() {
		raw, ok := cfg.ModuleConfig[mod.Name()]
		if !ok {
			continue
		}
		if err := mod.ParseConfig(raw); err != nil {
			log.Printf("App: failed to parse config for module %s: %v", mod.Name(), err)
		}
	}
}

// updateGeneralStyle reapplies global style settings to every registered
// activity across every module.
func (a *App) updateGeneralStyle() {
	style := a.currentConfig().GeneralStyle
	for _, mod := range a.registry.Snapshot() {
		for _, act := range mod.Activities() {
			act.ApplyStyle(style)
		}
	}
}

// loadLayoutConfig routes the active strategy's opaque block to it.
func (a *App) loadLayoutConfig() {
	cfg := a.currentConfig()

	a.layoutMu.Lock()
	defer a.layoutMu.Unlock()

	name := a.layout.Name()
	raw, ok := cfg.LayoutConfig[name]
	if !ok {
		log.Printf("App: no layout config for %s, using defaults", name)
		return
	}
	if err := a.layout.ParseConfig(raw); err != nil {
		log.Printf("App: failed to parse layout config for %s: %v", name, err)
		return
	}
	log.Printf("App: loaded layout config for %s", name)
}

// restartProducerRuntime retires the current generation, waits for its
// shutdown acknowledgment, installs a replacement, then replays every
// registered producer with the new handle. The swap happens under the
// runtime mutex so at no observable instant are there zero or two current
// handles; replay runs outside it since restarts are serialized on this
// loop and the new generation cannot be retired mid-replay.
func (a *App) restartProducerRuntime() {
	a.rtMu.Lock()
	a.runtime.shutdown()
	a.runtime = newRuntime()
	rt := a.runtime
	a.rtMu.Unlock()

	for _, mod := range a.registry.Snapshot() {
		for _, p := range mod.Producers() {
			p(rt, a.uiCmds)
		}
	}
}

// persistConfig records the active document in the history store.
func (a *App) persistConfig() {
	if a.history == nil || !a.hasValidConfig() {
		return
	}
	if err := a.history.Save(a.currentConfig()); err != nil {
		log.Printf("App: failed to persist config history: %v", err)
	}
}

// fallbackConfig returns the last valid stored document, or defaults when
// none was ever recorded.
func (a *App) fallbackConfig() config.Config {
	if a.history != nil {
		cfg, ok, err := a.history.LastValid()
		if err != nil {
			log.Printf("App: failed to read config history: %v", err)
		} else if ok {
			log.Printf("App: recovered last valid config from history")
			return cfg
		}
	}
	return config.Default()
}

func (a *App) currentConfig() config.Config {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	return a.cfg
}

func (a *App) setConfig(cfg config.Config) {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	a.cfg = cfg
}

func (a *App) markValid() {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	a.cfgValid = true
}

func (a *App) hasValidConfig() bool {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	return a.cfgValid
}
