// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package services

import (
	"context"
	"time"

	"github.com/tomtom215/menuroulette/internal/logging"
)

// SessionSweeper drops idle funnel sessions and reports how many went.
// Satisfied by *funnel.Registry.
type SessionSweeper interface {
	Sweep() int
}

// SessionSweeperService calls Sweep on a fixed interval.
//
// Lookups already expire stale sessions lazily; the sweep stops abandoned
// sessions from holding pending reveal timers until the next lookup.
type SessionSweeperService struct {
	sweeper  SessionSweeper
	interval time.Duration
	name     string
}

// NewSessionSweeperService creates the service. A non-positive interval becomes 1m.
func NewSessionSweeperService(sweeper SessionSweeper, interval time.Duration) *SessionSweeperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeperService{
		sweeper:  sweeper,
		interval: interval,
		name:     "session-sweeper",
	}
}

// Serve implements suture.Service.
func (s *SessionSweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.sweeper.Sweep(); n > 0 {
				logging.Debug().Int("evicted", n).Msg("Swept idle sessions")
			}
		}
	}
}

// String names the service in supervisor logs.
func (s *SessionSweeperService) String() string {
	return s.name
}
