// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"errors"

	"github.com/tomtom215/menuroulette/internal/catalog"
)

// Kind tags an Event.
type Kind string

// Event kinds. Which payload fields matter depends on the kind and on the
// step the session is at.
const (
	KindBegin        Kind = "begin"         // MoodIDs
	KindPickDirect   Kind = "pick_direct"   // CategoryID
	KindPickFavorite Kind = "pick_favorite" // no payload
	KindRepick       Kind = "repick"        // CategoryID
	KindSubmit       Kind = "submit"        // step payload
	KindSkip         Kind = "skip"
	KindBack         Kind = "back"
	KindToggle       Kind = "toggle"   // CategoryID
	KindRandom       Kind = "random"   // no payload
	KindComplete     Kind = "complete" // no payload
	KindSearch       Kind = "search"   // Text
	KindPick         Kind = "pick"     // CategoryID
	KindSpin         Kind = "spin"
	KindReveal       Kind = "reveal"
	KindReset        Kind = "reset"
)

// Kinds lists every event kind, for request validation.
var Kinds = []Kind{
	KindBegin, KindPickDirect, KindPickFavorite, KindRepick,
	KindSubmit, KindSkip, KindBack,
	KindToggle, KindRandom, KindComplete, KindSearch, KindPick,
	KindSpin, KindReveal, KindReset,
}

// Event is one user action.
type Event struct {
	Kind        Kind              `json:"kind"`
	CategoryIDs []string          `json:"category_ids,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	DietIDs     []string          `json:"diet_ids,omitempty"`
	MoodIDs     []string          `json:"mood_ids,omitempty"`
	Price       catalog.PriceTier `json:"price,omitempty"`
	People      int               `json:"people,omitempty"`
	CategoryID  string            `json:"category_id,omitempty"`
	Text        string            `json:"text,omitempty"`
}

// Route names how a session reached its final category.
type Route string

// Routes.
const (
	RouteDirect   Route = "direct"
	RouteFavorite Route = "favorite"
	RouteRepick   Route = "repick"
	RouteWanted   Route = "wanted"
	RouteSelect   Route = "select"
	RouteRandom   Route = "random"
	RouteRoulette Route = "roulette"
)

// Transition describes what an accepted event did.
type Transition struct {
	From Step
	To   Step

	// Finalized is set when the event produced the final category. The
	// caller records it in the history.
	Finalized *catalog.Category
	Route     Route
}

// Event errors. A rejected event leaves the session unchanged.
var (
	ErrInvalidEvent    = errors.New("event not valid at this step")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownMood     = errors.New("unknown mood")
	ErrUnknownDiet     = errors.New("unknown diet")
	ErrInvalidPeople   = errors.New("people count out of range")
	ErrNothingSelected = errors.New("nothing selected")
	ErrNoCandidates    = errors.New("no eligible candidates")
	ErrAlreadySpinning = errors.New("roulette already spun")
)

// Reason returns a short label for an Advance error, for metrics and API
// error codes.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		return "invalid_event"
	case errors.Is(err, ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, ErrUnknownMood):
		return "unknown_mood"
	case errors.Is(err, ErrUnknownDiet):
		return "unknown_diet"
	case errors.Is(err, ErrInvalidPeople):
		return "invalid_people"
	case errors.Is(err, ErrNothingSelected):
		return "nothing_selected"
	case errors.Is(err, ErrNoCandidates):
		return "no_candidates"
	case errors.Is(err, ErrAlreadySpinning):
		return "already_spinning"
	default:
		return "other"
	}
}
