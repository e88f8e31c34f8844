// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// countingStore stubs SessionStore for sweeper tests.
type countingStore struct {
	SessionStore
	sweeps  atomic.Int64
	removed int
	err     error
}

func (c *countingStore) DeleteExpired(ctx context.Context) (int, error) {
	c.sweeps.Add(1)
	return c.removed, c.err
}

func TestSweeperServeSweepsOnTick(t *testing.T) {
	store := &countingStore{removed: 2}
	sweeper := NewSweeper(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for store.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper never ticked")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}

func TestSweeperSurvivesStoreErrors(t *testing.T) {
	store := &countingStore{err: errors.New("database locked")}
	sweeper := NewSweeper(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sweeper.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for store.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper stopped after a store error")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSweeperString(t *testing.T) {
	if got := NewSweeper(nil, time.Hour).String(); got != "session-sweeper" {
		t.Errorf("String = %q", got)
	}
}
