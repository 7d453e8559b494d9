// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package resolver

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the random source used for every draw. Intn must return a value in
// [0, n) for n > 0.
type RNG interface {
	Intn(n int) int
}

// Seeded is a mutex-guarded math/rand source safe for concurrent sessions.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a deterministic source. A zero seed uses the wall clock.
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeded{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // food picks do not need crypto randomness
	}
}

// Intn implements RNG.
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Scripted replays fixed indices, wrapping each into [0, n). After the script
// runs out it keeps returning the last value. Intended for tests.
type Scripted struct {
	mu      sync.Mutex
	indices []int
	pos     int
}

// Fixed returns a Scripted source over indices.
func Fixed(indices ...int) *Scripted {
	if len(indices) == 0 {
		indices = []int{0}
	}
	return &Scripted{indices: indices}
}

// Intn implements RNG.
func (s *Scripted) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.indices[s.pos]
	if s.pos < len(s.indices)-1 {
		s.pos++
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
