// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"slices"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/filter"
)

// MaxRecommendedItems caps the item list shown with the final category.
const MaxRecommendedItems = 6

// View is what the current step offers to the user.
type View struct {
	SessionID string          `json:"session_id"`
	Step      Step            `json:"step"`
	CanBack   bool            `json:"can_back"`
	TimeOfDay clock.TimeOfDay `json:"time_of_day"`
	Answers   Answers         `json:"answers"`

	// Suggestions are the time-of-day categories shown at START.
	Suggestions []catalog.Category `json:"suggestions,omitempty"`

	// Options are the selectable categories of YESTERDAY, WANTED, EXCLUDE
	// and SELECT_MENU.
	Options        []catalog.Category `json:"options,omitempty"`
	CandidateCount int                `json:"candidate_count"`
	NoCandidates   bool               `json:"no_candidates"`

	Selections    []string           `json:"selections,omitempty"`
	Search        string             `json:"search,omitempty"`
	CurrentPerson int                `json:"current_person"`
	PeopleChoices []catalog.Category `json:"people_choices,omitempty"`

	// SpinIndex is the winning slot once spun, so a client can animate the
	// wheel toward it. The winner itself appears in Final after the reveal.
	SpinIndex *int `json:"spin_index,omitempty"`

	Final       *catalog.Category  `json:"final,omitempty"`
	Route       Route              `json:"route,omitempty"`
	Recommended []catalog.MenuItem `json:"recommended,omitempty"`
}

// BuildView describes s under env.
func BuildView(env Env, s Session) View {
	v := View{
		SessionID:     s.ID,
		Step:          s.Step,
		CanBack:       s.Step != StepStart && s.Step != StepResult && len(s.Trail) > 0,
		TimeOfDay:     env.TimeOfDay,
		Answers:       s.clone().Answers,
		Selections:    slices.Clone(s.Selections),
		Search:        s.Search,
		CurrentPerson: s.CurrentPerson,
		Route:         s.Route,
	}
	if len(s.PeopleChoices) > 0 {
		v.PeopleChoices = s.clone().PeopleChoices
	}

	switch s.Step {
	case StepStart:
		v.Suggestions = env.Catalog.Suggested(string(env.TimeOfDay))
	case StepYesterday:
		v.Options = slices.Clone(env.Catalog.Categories)
	case StepWanted, StepExclude:
		v.Options = filter.Run(env.Catalog, s.FilterContext(env.Blacklist)).Base
	case StepSelectMenu:
		v.Options = Candidates(env, s)
		v.CandidateCount = len(v.Options)
		v.NoCandidates = len(v.Options) == 0
	case StepRoulette:
		v.CandidateCount = len(s.PeopleChoices)
		if s.Spin != nil {
			idx := s.Spin.WinnerIndex
			v.SpinIndex = &idx
		}
	case StepResult:
		if s.Final != nil {
			final := s.Final.Clone()
			v.Final = &final
			v.Recommended = recommended(final, s.Answers.ExcludedTags)
		}
	}
	return v
}

// recommended lists the first items of cat that carry none of the excluded
// tags.
func recommended(cat catalog.Category, excludedTags []string) []catalog.MenuItem {
	excluded := make(map[string]struct{}, len(excludedTags))
	for _, t := range excludedTags {
		excluded[t] = struct{}{}
	}
	out := make([]catalog.MenuItem, 0, MaxRecommendedItems)
	for _, item := range cat.Items {
		if len(out) == MaxRecommendedItems {
			break
		}
		if item.HasAnyTag(excluded) {
			continue
		}
		out = append(out, item)
	}
	return out
}
