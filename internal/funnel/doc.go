// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

/*
Package funnel implements the step-by-step decision flow:

	START -> YESTERDAY -> WANTED -> EXCLUDE -> DIET -> PRICE -> PEOPLE -> SELECT_MENU -> ROULETTE -> RESULT

The flow is a pure transition function over a Session value:

	next, tr, err := funnel.Advance(env, s, funnel.Event{Kind: funnel.KindSubmit, CategoryIDs: []string{"pizza"}})

WANTED short-circuits the questionnaire: one wanted category finalizes at
once, several go straight to ROULETTE. Back walks the trail of visited
steps, so it returns to wherever the user actually came from.

Advance never records history and never sleeps. Runner owns those effects:
it writes the finalized category to the preference store and, after a Spin,
arms a cancellable timer that dispatches Reveal once the wheel stops.
*/
package funnel
