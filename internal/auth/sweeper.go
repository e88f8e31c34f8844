// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package auth

import (
	"context"
	"time"

	"github.com/pulsekit/pulseboard/internal/logging"
	"github.com/pulsekit/pulseboard/internal/metrics"
)

// Sweeper periodically removes expired sessions from the store. It runs
// as a supervised service; sweep failures are logged and the loop keeps
// going.
type Sweeper struct {
	store    SessionStore
	interval time.Duration
}

// NewSweeper creates a sweeper over the session store with the given
// sweep interval.
func NewSweeper(store SessionStore, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval}
}

// Serve runs the sweep loop until the context is cancelled. Satisfies
// suture.Service.
func (s *Sweeper) Serve(ctx context.Context) error {
	logging.Info().Dur("interval", s.interval).Msg("Session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Session sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.store.DeleteExpired(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Session sweep failed")
		return
	}

	metrics.SessionsSwept(removed)
	if removed > 0 {
		logging.Info().Int("removed", removed).Msg("Swept expired sessions")
	} else {
		logging.Debug().Msg("Session sweep found nothing to remove")
	}
}

func (s *Sweeper) String() string {
	return "session-sweeper"
}
