// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package resolver

import (
	"sync"
	"time"
)

// Reveal is a one-shot, cancellable delay between computing a spin and
// surfacing it. The callback runs at most once and never after Cancel.
type Reveal struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

// ScheduleReveal runs fn after delay on its own goroutine. A non-positive
// delay runs fn before returning.
func ScheduleReveal(delay time.Duration, fn func()) *Reveal {
	r := &Reveal{}
	if delay <= 0 {
		r.done = true
		fn()
		return r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer = time.AfterFunc(delay, func() {
		r.mu.Lock()
		if r.done {
			r.mu.Unlock()
			return
		}
		r.done = true
		r.mu.Unlock()
		fn()
	})
	return r
}

// Cancel stops a pending reveal. It reports whether the callback was still
// pending, i.e. whether this call prevented it from running.
func (r *Reveal) Cancel() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return false
	}
	r.done = true
	if r.timer != nil {
		r.timer.Stop()
	}
	return true
}

// Pending reports whether the callback has neither run nor been cancelled.
func (r *Reveal) Pending() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.done
}
