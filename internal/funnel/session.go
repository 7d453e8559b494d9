// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"slices"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/filter"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

// Answers are the values recorded by the questionnaire steps. Skipping a
// step stores its zero value here, except People which falls back to 1.
type Answers struct {
	MoodIDs             []string          `json:"mood_ids"`
	Yesterday           []string          `json:"yesterday"`
	Wanted              []string          `json:"wanted"`
	ExcludedCategoryIDs []string          `json:"excluded_category_ids"`
	ExcludedTags        []string          `json:"excluded_tags"`
	DietIDs             []string          `json:"diet_ids"`
	Price               catalog.PriceTier `json:"price"`
	People              int               `json:"people"`
}

// Session is the complete state of one funnel run. It is a plain value:
// Advance returns a new Session and never mutates the one it was given.
type Session struct {
	ID      string  `json:"id"`
	Step    Step    `json:"step"`
	Trail   []Step  `json:"trail"`
	Answers Answers `json:"answers"`

	// Selections are the toggled candidate ids at SELECT_MENU (single person).
	Selections []string `json:"selections"`
	Search     string   `json:"search"`

	// CurrentPerson is the zero-based participant about to pick.
	CurrentPerson int                `json:"current_person"`
	PeopleChoices []catalog.Category `json:"people_choices"`

	Spin  *resolver.SpinResult `json:"spin,omitempty"`
	Final *catalog.Category    `json:"final,omitempty"`
	Route Route                `json:"route,omitempty"`
}

// NewSession returns a session at START with neutral answers.
func NewSession(id string) Session {
	return Session{
		ID:      id,
		Step:    StepStart,
		Answers: Answers{People: 1},
	}
}

// clone deep-copies every slice and pointer so the result can be modified
// freely.
func (s Session) clone() Session {
	out := s
	out.Trail = slices.Clone(s.Trail)
	out.Answers.MoodIDs = slices.Clone(s.Answers.MoodIDs)
	out.Answers.Yesterday = slices.Clone(s.Answers.Yesterday)
	out.Answers.Wanted = slices.Clone(s.Answers.Wanted)
	out.Answers.ExcludedCategoryIDs = slices.Clone(s.Answers.ExcludedCategoryIDs)
	out.Answers.ExcludedTags = slices.Clone(s.Answers.ExcludedTags)
	out.Answers.DietIDs = slices.Clone(s.Answers.DietIDs)
	out.Selections = slices.Clone(s.Selections)
	if s.PeopleChoices != nil {
		out.PeopleChoices = make([]catalog.Category, len(s.PeopleChoices))
		for i, c := range s.PeopleChoices {
			out.PeopleChoices[i] = c.Clone()
		}
	}
	if s.Spin != nil {
		spin := *s.Spin
		spin.Winner = spin.Winner.Clone()
		out.Spin = &spin
	}
	if s.Final != nil {
		final := s.Final.Clone()
		out.Final = &final
	}
	return out
}

// clearSelection drops the transient SELECT_MENU and ROULETTE state.
func (s *Session) clearSelection() {
	s.Selections = nil
	s.Search = ""
	s.CurrentPerson = 0
	s.PeopleChoices = nil
	s.Spin = nil
}

// FilterContext builds the pipeline input from the recorded answers. The
// prior-day picks, the blacklist and the manual exclusions are merged.
func (s Session) FilterContext(blacklist map[string]struct{}) filter.Context {
	bl := make([]string, 0, len(blacklist))
	for id := range blacklist {
		bl = append(bl, id)
	}
	return filter.Context{
		ExcludedCategoryIDs: filter.MergeExclusions(s.Answers.Yesterday, bl, s.Answers.ExcludedCategoryIDs),
		ExcludedTags:        slices.Clone(s.Answers.ExcludedTags),
		MoodIDs:             slices.Clone(s.Answers.MoodIDs),
		DietIDs:             slices.Clone(s.Answers.DietIDs),
		Price:               s.Answers.Price,
		Search:              s.Search,
	}
}
