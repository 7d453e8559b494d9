// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package clock classifies wall-clock time into meal slots and provides an
// injectable time source.
package clock

import (
	"sync"
	"time"
)

// TimeOfDay is the meal slot label recorded with each history entry.
type TimeOfDay string

const (
	Lunch      TimeOfDay = "lunch"
	Dinner     TimeOfDay = "dinner"
	NightSnack TimeOfDay = "nightsnack"
	Meal       TimeOfDay = "meal"
)

// Classify maps an hour of the day (0-23) to a slot:
// [11,14) lunch, [17,21) dinner, >=21 or <5 nightsnack, anything else meal.
func Classify(hour int) TimeOfDay {
	switch {
	case hour >= 11 && hour < 14:
		return Lunch
	case hour >= 17 && hour < 21:
		return Dinner
	case hour >= 21 || hour < 5:
		return NightSnack
	default:
		return Meal
	}
}

// Of classifies t in its own location.
func Of(t time.Time) TimeOfDay {
	return Classify(t.Hour())
}

// Clock is the time source used by the preference store and funnel runner.
type Clock interface {
	Now() time.Time
}

// System uses time.Now.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return time.Now() }

// Fixed is a manually advanced clock for tests and replays.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a clock stopped at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now implements Clock.
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}
