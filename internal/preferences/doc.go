// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

/*
Package preferences keeps the user's favorites, blacklist and pick history.

The three records are independent: toggling a favorite never rewrites the
history and vice versa. Every mutation is applied to memory first and then
written through to a Persister. When the write fails the change stays in
memory and the caller gets an error wrapping ErrPersist, so a flaky disk
degrades durability without breaking the funnel.

Two persisters are provided:

  - BadgerPersister stores records under prefs:favorites, prefs:blacklist and
    prefs:history in BadgerDB, behind a gobreaker circuit breaker.
  - MemoryPersister keeps everything in process memory and can inject save
    failures for tests.

Usage:

	p, err := preferences.OpenBadger(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
	    return err
	}
	defer p.Close()

	store, err := preferences.Open(ctx, p, preferences.Options{})
	if err != nil {
	    return err
	}
	on, err := store.ToggleFavorite(ctx, "pizza")
*/
package preferences
