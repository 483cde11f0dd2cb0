// Copyright © 2025 Islet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/runtime_test.go
// Summary: Producer runtime generation lifecycle tests.

package host

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestRuntimeSpawnRunsTask(t *testing.T) {
	rt := newRuntime()
	defer rt.shutdown()

	var ran atomic.Bool
	rt.Spawn(func(ctx context.Context) { ran.Store(true) })

	waitFor(t, "task to run", ran.Load)
}

func TestRuntimeShutdownCancelsContext(t *testing.T) {
	rt := newRuntime()

	var stopped atomic.Bool
	rt.Spawn(func(ctx context.Context) {
		<-ctx.Done()
		stopped.Store(true)
	})

	rt.shutdown()
	waitFor(t, "task to observe cancellation", stopped.Load)

	select {
	case <-rt.Context().Done():
	default:
		t.Fatal("context not cancelled after shutdown")
	}
}

func TestRuntimeSpawnAfterShutdownDropsTask(t *testing.T) {
	rt := newRuntime()
	rt.shutdown()

	var ran atomic.Bool
	rt.Spawn(func(ctx context.Context) { ran.Store(true) })

	if ran.Load() {
		t.Fatal("task ran on a retired generation")
	}
}

func TestRuntimeShutdownIsIdempotent(t *testing.T) {
	rt := newRuntime()
	rt.shutdown()
	rt.shutdown()
}

func TestRuntimeGenerationsAreDistinct(t *testing.T) {
	first := newRuntime()
	second := newRuntime()
	defer first.shutdown()
	defer second.shutdown()

	if first.ID() == second.ID() {
		t.Fatalf("generations share id %s", first.ID())
	}
}
