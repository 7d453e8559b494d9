// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package filter reduces a catalog to eligible candidates for one funnel run.
//
// The pipeline is not a single chain. A base set is computed once and two
// views are derived from it independently:
//
//	catalog ── base exclusion ──┬── mood inclusion ── diet exclusion      (MoodDiet)
//	                            └── tag exclusion ── price ── search text (TagPrice)
//
// Mood and diet stages keep or drop whole categories. The tag stage prunes
// individual items and drops a category only when nothing is left. Callers
// that need one candidate list use Result.Candidates, the categories present
// in both views.
//
// Every function here is pure and deterministic: output order always follows
// catalog order and no map iteration leaks into results.
package filter
