// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package resolver reduces one or more candidates to exactly one winner.
//
// Two entry points exist. DrawRandom is the "just pick for me" draw with a
// two-tier favorites bias. Spin is the roulette tie-break over an explicit,
// ordered candidate list where duplicates count once per slot. Both are pure
// given an RNG; presentation delays live in Reveal, outside the computation.
package resolver

import (
	"errors"

	"github.com/tomtom215/menuroulette/internal/catalog"
)

// ErrEmptyPool is returned when asked to choose from nothing.
var ErrEmptyPool = errors.New("resolver: empty pool")

// SpinResult is the outcome of a roulette spin.
type SpinResult struct {
	WinnerIndex int              `json:"winner_index"`
	Winner      catalog.Category `json:"winner"`
}

// DrawRandom picks uniformly from the favorites inside pool, or from the whole
// pool when none of its categories is a favorite.
func DrawRandom(pool []catalog.Category, favorites map[string]struct{}, rng RNG) (catalog.Category, error) {
	if len(pool) == 0 {
		return catalog.Category{}, ErrEmptyPool
	}

	preferred := make([]catalog.Category, 0, len(pool))
	for _, c := range pool {
		if _, ok := favorites[c.ID]; ok {
			preferred = append(preferred, c)
		}
	}
	if len(preferred) == 0 {
		preferred = pool
	}
	return preferred[rng.Intn(len(preferred))], nil
}

// Spin draws the winning slot uniformly over [0, len(candidates)).
func Spin(candidates []catalog.Category, rng RNG) (SpinResult, error) {
	if len(candidates) == 0 {
		return SpinResult{}, ErrEmptyPool
	}
	i := rng.Intn(len(candidates))
	return SpinResult{WinnerIndex: i, Winner: candidates[i]}, nil
}
