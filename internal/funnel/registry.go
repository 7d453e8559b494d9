// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/menuroulette/internal/cache"
	"github.com/tomtom215/menuroulette/internal/metrics"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// RegistryConfig bounds the set of live sessions.
type RegistryConfig struct {
	// TTL is the idle time after which a session is dropped.
	TTL time.Duration

	// MaxEntries caps live sessions; the least recently used goes first.
	MaxEntries int

	// Now replaces time.Now in tests.
	Now func() time.Time
}

// Registry holds the live Runners by session id. Every session that
// leaves the registry is closed, which cancels its pending reveal.
type Registry struct {
	runner   RunnerConfig
	sessions *cache.LRU[*Runner]
	newID    func() string
}

// NewRegistry creates a registry whose sessions share runner.
func NewRegistry(runner RunnerConfig, cfg RegistryConfig) *Registry {
	return &Registry{
		runner: runner,
		newID:  func() string { return uuid.New().String() },
		sessions: cache.New(cache.Options[*Runner]{
			Capacity: cfg.MaxEntries,
			TTL:      cfg.TTL,
			Now:      cfg.Now,
			OnEvict: func(_ string, r *Runner, reason cache.EvictReason) {
				r.Close()
				metrics.RecordSessionEvicted(string(reason))
			},
		}),
	}
}

// Create starts a new session.
func (g *Registry) Create() *Runner {
	r := NewRunner(g.newID(), g.runner)
	metrics.ActiveSessions.Inc()
	g.sessions.Add(r.ID(), r)
	return r
}

// Get returns the live session with id and refreshes its idle timer.
func (g *Registry) Get(id string) (*Runner, error) {
	r, ok := g.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return r, nil
}

// Delete abandons a session.
func (g *Registry) Delete(id string) error {
	if !g.sessions.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

// Len returns the number of live sessions.
func (g *Registry) Len() int {
	return g.sessions.Len()
}

// Sweep drops idle sessions and returns how many went.
func (g *Registry) Sweep() int {
	return g.sessions.CleanupExpired()
}

// Close abandons every session.
func (g *Registry) Close() {
	g.sessions.Purge()
}
