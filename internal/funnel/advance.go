// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/filter"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

// DefaultMaxPeople is used when Env.MaxPeople is not set.
const DefaultMaxPeople = 3

// Env is everything outside the session that a transition reads. The
// favorite and blacklist sets are snapshots and are never modified.
type Env struct {
	Catalog   *catalog.Catalog
	Favorites map[string]struct{}
	Blacklist map[string]struct{}
	RNG       resolver.RNG
	MaxPeople int

	// TimeOfDay orders the START suggestions. It never affects filtering.
	TimeOfDay clock.TimeOfDay
}

func (e Env) maxPeople() int {
	if e.MaxPeople <= 0 {
		return DefaultMaxPeople
	}
	return e.MaxPeople
}

// Advance applies ev to s and returns the next session. It has no side
// effects: history recording and the reveal delay belong to the caller.
// On error the returned session is s itself.
func Advance(env Env, s Session, ev Event) (Session, Transition, error) {
	next := s.clone()
	tr, err := advance(env, &next, ev)
	if err != nil {
		return s, Transition{From: s.Step, To: s.Step}, err
	}
	tr.From = s.Step
	tr.To = next.Step
	return next, tr, nil
}

func advance(env Env, s *Session, ev Event) (Transition, error) {
	switch ev.Kind {
	case KindReset:
		*s = NewSession(s.ID)
		return Transition{}, nil
	case KindBack:
		return Transition{}, back(s)
	}

	switch {
	case s.Step == StepStart:
		return start(env, s, ev)
	case s.Step.questionnaire():
		return questionnaire(env, s, ev)
	case s.Step == StepSelectMenu:
		return selectMenu(env, s, ev)
	case s.Step == StepRoulette:
		return roulette(env, s, ev)
	default:
		return Transition{}, invalid(s.Step, ev.Kind)
	}
}

func invalid(step Step, kind Kind) error {
	return fmt.Errorf("%w: %s at %s", ErrInvalidEvent, kind, step)
}

func forward(s *Session, to Step) {
	s.Trail = append(s.Trail, s.Step)
	s.Step = to
}

func finalize(s *Session, cat catalog.Category, route Route) Transition {
	final := cat.Clone()
	s.Final = &final
	s.Route = route
	forward(s, StepResult)
	snapshot := final.Clone()
	return Transition{Finalized: &snapshot, Route: route}
}

func back(s *Session) error {
	if s.Step == StepStart || s.Step == StepResult || len(s.Trail) == 0 {
		return invalid(s.Step, KindBack)
	}
	if s.Step == StepSelectMenu || s.Step == StepRoulette {
		s.clearSelection()
	}
	s.Step = s.Trail[len(s.Trail)-1]
	s.Trail = s.Trail[:len(s.Trail)-1]
	return nil
}

func start(env Env, s *Session, ev Event) (Transition, error) {
	switch ev.Kind {
	case KindBegin:
		if err := CheckMoods(env.Catalog, ev.MoodIDs); err != nil {
			return Transition{}, err
		}
		s.Answers.MoodIDs = dedupe(ev.MoodIDs)
		forward(s, StepYesterday)
		return Transition{}, nil

	case KindPickDirect, KindRepick:
		cat, ok := env.Catalog.Category(ev.CategoryID)
		if !ok {
			return Transition{}, fmt.Errorf("%w: %q", ErrUnknownCategory, ev.CategoryID)
		}
		route := RouteDirect
		if ev.Kind == KindRepick {
			route = RouteRepick
		}
		return finalize(s, cat, route), nil

	case KindPickFavorite:
		for _, cat := range env.Catalog.Categories {
			if _, fav := env.Favorites[cat.ID]; !fav {
				continue
			}
			if _, banned := env.Blacklist[cat.ID]; banned {
				continue
			}
			return finalize(s, cat, RouteFavorite), nil
		}
		return Transition{}, fmt.Errorf("%w: no usable favorite", ErrNoCandidates)
	}
	return Transition{}, invalid(s.Step, ev.Kind)
}

func questionnaire(env Env, s *Session, ev Event) (Transition, error) {
	switch ev.Kind {
	case KindSubmit:
		return submit(env, s, ev)
	case KindSkip:
		return skip(s), nil
	}
	return Transition{}, invalid(s.Step, ev.Kind)
}

// skip records the neutral answer of the current step and moves on.
func skip(s *Session) Transition {
	switch s.Step {
	case StepYesterday:
		s.Answers.Yesterday = nil
		forward(s, StepWanted)
	case StepWanted:
		s.Answers.Wanted = nil
		forward(s, StepExclude)
	case StepExclude:
		s.Answers.ExcludedCategoryIDs = nil
		s.Answers.ExcludedTags = nil
		forward(s, StepDiet)
	case StepDiet:
		s.Answers.DietIDs = nil
		forward(s, StepPrice)
	case StepPrice:
		s.Answers.Price = ""
		forward(s, StepPeople)
	case StepPeople:
		s.Answers.People = 1
		s.clearSelection()
		forward(s, StepSelectMenu)
	}
	return Transition{}
}

func submit(env Env, s *Session, ev Event) (Transition, error) {
	switch s.Step {
	case StepYesterday:
		ids, err := catalogOrder(env.Catalog.Categories, ev.CategoryIDs)
		if err != nil {
			return Transition{}, err
		}
		s.Answers.Yesterday = ids
		forward(s, StepWanted)

	case StepWanted:
		base := filter.Run(env.Catalog, s.FilterContext(env.Blacklist)).Base
		ids, err := catalogOrder(base, ev.CategoryIDs)
		if err != nil {
			return Transition{}, err
		}
		s.Answers.Wanted = ids
		switch len(ids) {
		case 0:
			forward(s, StepExclude)
		case 1:
			return finalize(s, pick(base, ids)[0], RouteWanted), nil
		default:
			s.clearSelection()
			s.PeopleChoices = pick(base, ids)
			forward(s, StepRoulette)
		}

	case StepExclude:
		ids, err := catalogOrder(env.Catalog.Categories, ev.CategoryIDs)
		if err != nil {
			return Transition{}, err
		}
		s.Answers.ExcludedCategoryIDs = ids
		s.Answers.ExcludedTags = dedupe(ev.Tags)
		forward(s, StepDiet)

	case StepDiet:
		if err := CheckDiets(env.Catalog, ev.DietIDs); err != nil {
			return Transition{}, err
		}
		s.Answers.DietIDs = dedupe(ev.DietIDs)
		forward(s, StepPrice)

	case StepPrice:
		if ev.Price != "" && !ev.Price.Valid() {
			return Transition{}, fmt.Errorf("%w: unknown price tier %q", ErrInvalidEvent, ev.Price)
		}
		s.Answers.Price = ev.Price
		forward(s, StepPeople)

	case StepPeople:
		if ev.People < 1 || ev.People > env.maxPeople() {
			return Transition{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidPeople, ev.People, env.maxPeople())
		}
		s.Answers.People = ev.People
		s.clearSelection()
		forward(s, StepSelectMenu)
	}
	return Transition{}, nil
}

// Candidates returns the fully filtered set offered at SELECT_MENU.
func Candidates(env Env, s Session) []catalog.Category {
	return filter.Run(env.Catalog, s.FilterContext(env.Blacklist)).Candidates()
}

func selectMenu(env Env, s *Session, ev Event) (Transition, error) {
	candidates := Candidates(env, *s)
	multi := s.Answers.People > 1

	switch ev.Kind {
	case KindSearch:
		s.Search = strings.TrimSpace(ev.Text)
		visible := Candidates(env, *s)
		s.Selections = slices.DeleteFunc(s.Selections, func(id string) bool {
			return indexOf(visible, id) < 0
		})
		return Transition{}, nil

	case KindRandom:
		cat, err := resolver.DrawRandom(candidates, env.Favorites, env.RNG)
		if errors.Is(err, resolver.ErrEmptyPool) {
			return Transition{}, ErrNoCandidates
		}
		if err != nil {
			return Transition{}, err
		}
		if multi {
			return personPick(s, cat), nil
		}
		return finalize(s, cat, RouteRandom), nil

	case KindPick:
		i := indexOf(candidates, ev.CategoryID)
		if i < 0 {
			return Transition{}, fmt.Errorf("%w: %q is not a candidate", ErrUnknownCategory, ev.CategoryID)
		}
		if multi {
			return personPick(s, candidates[i]), nil
		}
		return finalize(s, candidates[i], RouteSelect), nil

	case KindToggle:
		if multi {
			break
		}
		if indexOf(candidates, ev.CategoryID) < 0 {
			return Transition{}, fmt.Errorf("%w: %q is not a candidate", ErrUnknownCategory, ev.CategoryID)
		}
		if j := slices.Index(s.Selections, ev.CategoryID); j >= 0 {
			s.Selections = slices.Delete(s.Selections, j, j+1)
		} else {
			s.Selections = append(s.Selections, ev.CategoryID)
		}
		return Transition{}, nil

	case KindComplete:
		if multi {
			break
		}
		chosen := make([]catalog.Category, 0, len(s.Selections))
		for _, id := range s.Selections {
			if i := indexOf(candidates, id); i >= 0 {
				chosen = append(chosen, candidates[i])
			}
		}
		switch len(chosen) {
		case 0:
			if len(candidates) == 0 {
				return Transition{}, ErrNoCandidates
			}
			return Transition{}, ErrNothingSelected
		case 1:
			return finalize(s, chosen[0], RouteSelect), nil
		default:
			s.PeopleChoices = chosen
			forward(s, StepRoulette)
			return Transition{}, nil
		}
	}
	return Transition{}, invalid(s.Step, ev.Kind)
}

// personPick records one participant's choice. After the last participant
// the session moves to ROULETTE.
func personPick(s *Session, cat catalog.Category) Transition {
	s.PeopleChoices = append(s.PeopleChoices, cat.Clone())
	s.CurrentPerson++
	if len(s.PeopleChoices) >= s.Answers.People {
		forward(s, StepRoulette)
	}
	return Transition{}
}

func roulette(env Env, s *Session, ev Event) (Transition, error) {
	switch ev.Kind {
	case KindSpin:
		if s.Spin != nil {
			return Transition{}, ErrAlreadySpinning
		}
		res, err := resolver.Spin(s.PeopleChoices, env.RNG)
		if errors.Is(err, resolver.ErrEmptyPool) {
			return Transition{}, ErrNoCandidates
		}
		if err != nil {
			return Transition{}, err
		}
		s.Spin = &res
		return Transition{}, nil

	case KindReveal:
		if s.Spin == nil {
			return Transition{}, fmt.Errorf("%w: reveal before spin", ErrInvalidEvent)
		}
		return finalize(s, s.Spin.Winner, RouteRoulette), nil
	}
	return Transition{}, invalid(s.Step, ev.Kind)
}

// CheckMoods returns ErrUnknownMood for the first id the catalog does not
// define. The filter ignores unknown moods, which would silently leave no
// candidates.
func CheckMoods(cat *catalog.Catalog, ids []string) error {
	for _, id := range ids {
		if _, ok := cat.Mood(id); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMood, id)
		}
	}
	return nil
}

// CheckDiets is CheckMoods for diet restriction ids.
func CheckDiets(cat *catalog.Catalog, ids []string) error {
	for _, id := range ids {
		if _, ok := cat.Diet(id); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDiet, id)
		}
	}
	return nil
}

// catalogOrder validates ids against pool and returns them deduplicated in
// pool order.
func catalogOrder(pool []catalog.Category, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if indexOf(pool, id) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
		}
		want[id] = struct{}{}
	}
	out := make([]string, 0, len(want))
	for _, c := range pool {
		if _, ok := want[c.ID]; ok {
			out = append(out, c.ID)
		}
	}
	return out, nil
}

func pick(pool []catalog.Category, ids []string) []catalog.Category {
	out := make([]catalog.Category, 0, len(ids))
	for _, id := range ids {
		if i := indexOf(pool, id); i >= 0 {
			out = append(out, pool[i].Clone())
		}
	}
	return out
}

func indexOf(pool []catalog.Category, id string) int {
	return slices.IndexFunc(pool, func(c catalog.Category) bool { return c.ID == id })
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
