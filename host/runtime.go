// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/runtime.go
// Summary: Swappable background execution context for producer tasks.
// Usage: Exactly one generation is current; restart retires the old one
// before replaying producers against its replacement.

package host

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// shutdownAckTimeout bounds how long a restart waits for the retired
// generation to acknowledge shutdown before the host gives up.
const shutdownAckTimeout = 5 * time.Second

// Runtime is one generation of the producer runtime. Producers spawn their
// long-running work on it; shutdown is cooperative, tasks watch the
// generation context and are abandoned, not rolled back.
type Runtime struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// newRuntime spawns a keeper goroutine for a fresh generation and blocks
// until it reports ready.
func newRuntime() *Runtime {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runtime{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	ready := make(chan struct{})
	go func() {
		close(ready)
		<-r.stop
		r.cancel()
		close(r.done)
	}()
	<-ready

	log.Printf("Runtime: generation %s ready", r.id)
	return r
}

// ID returns the generation identifier, used in logs and diagnostics.
func (r *Runtime) ID() string { return r.id }

// Context returns the generation context. It is cancelled when the
// generation shuts down.
func (r *Runtime) Context() context.Context { return r.ctx }

// Spawn schedules a background task on this generation. The task must
// return when the context is cancelled. Spawning on a retired generation
// logs and drops the task.
func (r *Runtime) Spawn(task func(ctx context.Context)) {
	select {
	case <-r.ctx.Done():
		log.Printf("Runtime: generation %s is shut down, dropping task", r.id)
		return
	default:
	}
	go task(r.ctx)
}

// shutdown signals the keeper and waits for its acknowledgment. Tasks
// still scheduled on the generation are abandoned. Failure to acknowledge
// is fatal: the host cannot continue with two live execution contexts.
func (r *Runtime) shutdown() {
	r.stopOnce.Do(func() { close(r.stop) })
	select {
	case <-r.done:
	case <-time.After(shutdownAckTimeout):
		log.Fatalf("Runtime: generation %s failed to acknowledge shutdown", r.id)
	}
	log.Printf("Runtime: generation %s shut down", r.id)
}
