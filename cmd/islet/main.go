// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/islet/main.go
// Summary: islet widget host entry point.
// Usage: Run `islet` to start the host against ~/.config/islet.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/islet/config"
	"github.com/framegrace/islet/host"
	"github.com/framegrace/islet/storage"

	// Built-in plugins register themselves at init time.
	_ "github.com/framegrace/islet/layouts/grid"
	_ "github.com/framegrace/islet/modules/clock"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("islet", flag.ContinueOnError)
	configDir := fs.String("config-dir", "", "Config directory (default: ~/.config/islet)")
	noHistory := fs.Bool("no-history", false, "Disable the config history store")
	logPath := fs.String("log", "", "Write logs to this file instead of stderr")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("islet requires a terminal")
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	dir := *configDir
	if dir == "" {
		root, err := config.Root()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		dir = root
	}
	if err := config.EnsureRoot(dir); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	log.Printf("islet: pid %d, config dir %s", os.Getpid(), dir)

	opts := host.Options{ConfigDir: dir}
	if !*noHistory {
		history, err := storage.Open(config.HistoryPath(dir))
		if err != nil {
			log.Printf("islet: config history unavailable: %v", err)
		} else {
			opts.History = history
			defer history.Close()
		}
	}

	app := host.New(opts)
	if err := app.Initialize(); err != nil {
		return err
	}
	defer app.Close()
	if err := app.StartWatcher(); err != nil {
		// Without the watcher the host cannot uphold timely reloads.
		return err
	}

	return runScreen(app)
}
