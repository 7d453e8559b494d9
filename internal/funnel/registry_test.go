// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

func newRegistry(t *testing.T, clk *clock.Fixed, maxEntries int) *Registry {
	t.Helper()
	store, _ := newStore(t)
	return NewRegistry(RunnerConfig{
		Catalog:   fixture(t),
		Store:     store,
		RNG:       resolver.Fixed(0),
		SpinDelay: time.Hour,
	}, RegistryConfig{TTL: 10 * time.Minute, MaxEntries: maxEntries, Now: clk.Now})
}

func TestRegistryLifecycle(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	g := newRegistry(t, clk, 10)

	r := g.Create()
	got, err := g.Get(r.ID())
	if err != nil || got != r {
		t.Fatalf("Get() = (%v, %v)", got, err)
	}
	if err := g.Delete(r.ID()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := g.Get(r.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after delete = %v, want ErrSessionNotFound", err)
	}
	if err := g.Delete(r.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete = %v", err)
	}
	if _, err := r.Dispatch(context.Background(), begin); !errors.Is(err, ErrClosed) {
		t.Errorf("deleted runner should be closed, got %v", err)
	}
}

func TestRegistryExpiryClosesAndCancels(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	g := newRegistry(t, clk, 10)

	r := g.Create()
	dispatch(t, r, begin, skipE, Event{Kind: KindSubmit, CategoryIDs: []string{"korean", "cafe"}}, Event{Kind: KindSpin})
	if !r.RevealPending() {
		t.Fatal("expected pending reveal")
	}
	keep := g.Create()

	clk.Advance(6 * time.Minute)
	if _, err := g.Get(keep.ID()); err != nil {
		t.Fatal(err)
	}
	clk.Advance(6 * time.Minute)

	if n := g.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if r.RevealPending() {
		t.Error("expired session should have its reveal cancelled")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestRegistryCapacityEvictsOldest(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	g := newRegistry(t, clk, 2)

	first := g.Create()
	g.Create()
	g.Create()

	if _, err := g.Get(first.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("oldest session should be evicted, got %v", err)
	}
	g.Close()
	if g.Len() != 0 {
		t.Errorf("Len() after Close = %d", g.Len())
	}
}
