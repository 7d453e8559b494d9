// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

const fixtureYAML = `
categories:
  - id: korean
    name: Korean
    price: medium
    items:
      - {name: Kimchi stew, tags: [spicy, soup]}
      - {name: Bulgogi, tags: [meat, sweet]}
  - id: chinese
    name: Chinese
    price: medium
    items:
      - {name: Mapo tofu, tags: [spicy]}
  - id: pizza
    name: Pizza
    price: medium
    items:
      - {name: Margherita, tags: [cheese]}
  - id: cafe
    name: Cafe
    price: low
    items:
      - {name: Cake, tags: [sweet, cream]}
moods:
  - {id: sweet-tooth, category_ids: [], tags: [sweet], exclude_tags: [spicy]}
diets:
  - {id: dairy-free, exclude_tags: [cream, cheese], exclude_category_ids: []}
time_weights:
  lunch: [korean, cafe]
`

func fixture(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return cat
}

func testEnv(t *testing.T, rng resolver.RNG) Env {
	t.Helper()
	return Env{
		Catalog:   fixture(t),
		Favorites: map[string]struct{}{},
		Blacklist: map[string]struct{}{},
		RNG:       rng,
		MaxPeople: 3,
		TimeOfDay: "lunch",
	}
}

// run applies events in order and fails the test on the first error.
func run(t *testing.T, env Env, s Session, events ...Event) (Session, []Transition) {
	t.Helper()
	var trs []Transition
	for i, ev := range events {
		next, tr, err := Advance(env, s, ev)
		if err != nil {
			t.Fatalf("event %d (%s at %s): %v", i, ev.Kind, s.Step, err)
		}
		s = next
		trs = append(trs, tr)
	}
	return s, trs
}

var (
	begin = Event{Kind: KindBegin}
	skipE = Event{Kind: KindSkip}
	backE = Event{Kind: KindBack}
)

func toSelectMenu(t *testing.T, env Env, people int) Session {
	t.Helper()
	s, _ := run(t, env, NewSession("s1"),
		begin, skipE, skipE, skipE, skipE, skipE,
		Event{Kind: KindSubmit, People: people},
	)
	if s.Step != StepSelectMenu {
		t.Fatalf("step = %s, want SELECT_MENU", s.Step)
	}
	return s
}

func TestStepString(t *testing.T) {
	t.Parallel()

	if StepSelectMenu.String() != "SELECT_MENU" || StepResult.String() != "RESULT" {
		t.Error("unexpected step names")
	}
	if Step(42).String() != "Step(42)" {
		t.Errorf("out of range = %s", Step(42))
	}
	var s Step
	if err := s.UnmarshalText([]byte("ROULETTE")); err != nil || s != StepRoulette {
		t.Errorf("UnmarshalText = (%v, %v)", s, err)
	}
	if err := s.UnmarshalText([]byte("NOPE")); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestWantedSingleFinalizes(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, trs := run(t, env, NewSession("s1"),
		begin, skipE,
		Event{Kind: KindSubmit, CategoryIDs: []string{"pizza"}},
	)

	if s.Step != StepResult || s.Final == nil || s.Final.ID != "pizza" {
		t.Fatalf("session = step %s final %v, want RESULT pizza", s.Step, s.Final)
	}
	last := trs[len(trs)-1]
	if last.Finalized == nil || last.Finalized.ID != "pizza" || last.Route != RouteWanted {
		t.Errorf("transition = %+v", last)
	}
	finalized := 0
	for _, tr := range trs {
		if tr.Finalized != nil {
			finalized++
		}
	}
	if finalized != 1 {
		t.Errorf("finalized transitions = %d, want exactly 1", finalized)
	}
}

func TestWantedMultipleGoesToRoulette(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(1))
	s, trs := run(t, env, NewSession("s1"),
		begin, skipE,
		Event{Kind: KindSubmit, CategoryIDs: []string{"cafe", "korean"}},
	)

	if s.Step != StepRoulette {
		t.Fatalf("step = %s, want ROULETTE", s.Step)
	}
	if len(s.PeopleChoices) != 2 {
		t.Fatalf("people choices = %d, want 2", len(s.PeopleChoices))
	}
	if s.PeopleChoices[0].ID != "korean" || s.PeopleChoices[1].ID != "cafe" {
		t.Errorf("choices not in catalog order: %s, %s", s.PeopleChoices[0].ID, s.PeopleChoices[1].ID)
	}
	if trs[len(trs)-1].Finalized != nil {
		t.Error("roulette entry must not finalize")
	}

	s, trs = run(t, env, s, Event{Kind: KindSpin})
	if s.Spin == nil || s.Spin.WinnerIndex != 1 || s.Step != StepRoulette {
		t.Fatalf("after spin: %+v", s.Spin)
	}
	if trs[0].Finalized != nil {
		t.Error("spin alone must not finalize")
	}
	if _, _, err := Advance(env, s, Event{Kind: KindSpin}); !errors.Is(err, ErrAlreadySpinning) {
		t.Errorf("second spin error = %v, want ErrAlreadySpinning", err)
	}

	s, trs = run(t, env, s, Event{Kind: KindReveal})
	if s.Step != StepResult || s.Final.ID != "cafe" || trs[0].Route != RouteRoulette {
		t.Errorf("after reveal: step %s final %v route %s", s.Step, s.Final, trs[0].Route)
	}
}

func TestWantedZeroContinues(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"), begin, skipE, Event{Kind: KindSubmit})
	if s.Step != StepExclude {
		t.Errorf("step = %s, want EXCLUDE", s.Step)
	}
}

func TestWantedRejectsExcluded(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	env.Blacklist["pizza"] = struct{}{}
	s, _ := run(t, env, NewSession("s1"), begin, Event{Kind: KindSubmit, CategoryIDs: []string{"korean"}})

	for _, id := range []string{"korean", "pizza", "sushi"} {
		_, _, err := Advance(env, s, Event{Kind: KindSubmit, CategoryIDs: []string{id}})
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("%s: error = %v, want ErrUnknownCategory", id, err)
		}
	}
}

func TestSkipRecordsNeutralAnswers(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"),
		begin,
		Event{Kind: KindSubmit, CategoryIDs: []string{"korean"}},
		skipE,
		Event{Kind: KindSubmit, CategoryIDs: []string{"chinese"}, Tags: []string{"spicy"}},
		Event{Kind: KindSubmit, DietIDs: []string{"dairy-free"}},
		Event{Kind: KindSubmit, Price: catalog.PriceMedium},
		Event{Kind: KindSubmit, People: 2},
		backE, skipE, // PEOPLE skipped -> 1
	)
	if s.Answers.People != 1 {
		t.Errorf("skipped people = %d, want 1", s.Answers.People)
	}

	// Walk back to EXCLUDE and skip everything from there.
	s, _ = run(t, env, s, backE, backE, backE, backE, skipE, skipE, skipE, skipE)
	want := Answers{
		Yesterday: []string{"korean"},
		People:    1,
	}
	if diff := cmp.Diff(want, s.Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	ctx := s.FilterContext(env.Blacklist)
	if diff := cmp.Diff([]string{"korean"}, ctx.ExcludedCategoryIDs); diff != "" {
		t.Errorf("exclusions mismatch (-want +got):\n%s", diff)
	}
	if ctx.ExcludedTags != nil || ctx.DietIDs != nil || ctx.Price != "" {
		t.Errorf("skip left context populated: %+v", ctx)
	}
}

func TestBackFollowsTrail(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"),
		begin,
		Event{Kind: KindSubmit, CategoryIDs: []string{"chinese"}},
		Event{Kind: KindSubmit, CategoryIDs: []string{"korean", "pizza"}},
	)
	if s.Step != StepRoulette {
		t.Fatalf("step = %s", s.Step)
	}

	s, _ = run(t, env, s, backE)
	if s.Step != StepWanted {
		t.Errorf("back from roulette = %s, want WANTED", s.Step)
	}
	if len(s.PeopleChoices) != 0 || s.Spin != nil {
		t.Error("leaving roulette must clear people choices")
	}
	if diff := cmp.Diff([]string{"korean", "pizza"}, s.Answers.Wanted); diff != "" {
		t.Errorf("wanted answer not preserved (-want +got):\n%s", diff)
	}

	s, _ = run(t, env, s, backE)
	if s.Step != StepYesterday || s.Answers.Yesterday[0] != "chinese" {
		t.Errorf("back to yesterday = %s %v", s.Step, s.Answers.Yesterday)
	}

	s, _ = run(t, env, s, backE)
	if s.Step != StepStart {
		t.Errorf("step = %s, want START", s.Step)
	}
	if _, _, err := Advance(env, s, backE); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("back at START error = %v, want ErrInvalidEvent", err)
	}
}

func TestBackAtResultIsInvalid(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"), Event{Kind: KindPickDirect, CategoryID: "cafe"})
	if _, _, err := Advance(env, s, backE); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("error = %v, want ErrInvalidEvent", err)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s := toSelectMenu(t, env, 1)
	s, _ = run(t, env, s, Event{Kind: KindToggle, CategoryID: "korean"})

	before := s.clone()
	if _, _, err := Advance(env, s, Event{Kind: KindToggle, CategoryID: "pizza"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSelectMenuSinglePerson(t *testing.T) {
	t.Parallel()

	t.Run("one toggled finalizes", func(t *testing.T) {
		env := testEnv(t, resolver.Fixed(0))
		s := toSelectMenu(t, env, 1)
		s, trs := run(t, env, s,
			Event{Kind: KindToggle, CategoryID: "pizza"},
			Event{Kind: KindToggle, CategoryID: "cafe"},
			Event{Kind: KindToggle, CategoryID: "cafe"},
			Event{Kind: KindComplete},
		)
		if s.Step != StepResult || s.Final.ID != "pizza" || trs[3].Route != RouteSelect {
			t.Errorf("result = %s %v", s.Step, s.Final)
		}
	})

	t.Run("several toggled spin", func(t *testing.T) {
		env := testEnv(t, resolver.Fixed(0))
		s := toSelectMenu(t, env, 1)
		s, _ = run(t, env, s,
			Event{Kind: KindToggle, CategoryID: "cafe"},
			Event{Kind: KindToggle, CategoryID: "korean"},
			Event{Kind: KindComplete},
		)
		if s.Step != StepRoulette || len(s.PeopleChoices) != 2 || s.PeopleChoices[0].ID != "cafe" {
			t.Errorf("roulette = %s %v", s.Step, s.PeopleChoices)
		}
	})

	t.Run("nothing toggled", func(t *testing.T) {
		env := testEnv(t, resolver.Fixed(0))
		s := toSelectMenu(t, env, 1)
		if _, _, err := Advance(env, s, Event{Kind: KindComplete}); !errors.Is(err, ErrNothingSelected) {
			t.Errorf("error = %v, want ErrNothingSelected", err)
		}
	})

	t.Run("random prefers favorites", func(t *testing.T) {
		env := testEnv(t, resolver.Fixed(0))
		env.Favorites["cafe"] = struct{}{}
		s := toSelectMenu(t, env, 1)
		s, trs := run(t, env, s, Event{Kind: KindRandom})
		if s.Final.ID != "cafe" || trs[0].Route != RouteRandom {
			t.Errorf("random = %v via %s, want cafe", s.Final, trs[0].Route)
		}
	})

	t.Run("search narrows and drops hidden toggles", func(t *testing.T) {
		env := testEnv(t, resolver.Fixed(0))
		s := toSelectMenu(t, env, 1)
		s, _ = run(t, env, s,
			Event{Kind: KindToggle, CategoryID: "korean"},
			Event{Kind: KindToggle, CategoryID: "pizza"},
			Event{Kind: KindSearch, Text: "  MARGH "},
		)
		if diff := cmp.Diff([]string{"pizza"}, s.Selections); diff != "" {
			t.Errorf("selections mismatch (-want +got):\n%s", diff)
		}
		if got := Candidates(env, s); len(got) != 1 || got[0].ID != "pizza" {
			t.Errorf("candidates = %v", got)
		}
		if _, _, err := Advance(env, s, Event{Kind: KindToggle, CategoryID: "korean"}); !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("toggle hidden = %v, want ErrUnknownCategory", err)
		}
	})
}

func TestMultiPersonAggregation(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(2, 0))
	s := toSelectMenu(t, env, 3)

	s, _ = run(t, env, s, Event{Kind: KindPick, CategoryID: "korean"})
	if len(s.PeopleChoices) != 1 || s.CurrentPerson != 1 || s.Step != StepSelectMenu {
		t.Fatalf("after first pick: %d choices, person %d, %s", len(s.PeopleChoices), s.CurrentPerson, s.Step)
	}
	s, _ = run(t, env, s, Event{Kind: KindPick, CategoryID: "korean"})
	if len(s.PeopleChoices) != 2 {
		t.Fatalf("duplicates must be kept, got %d", len(s.PeopleChoices))
	}
	if _, _, err := Advance(env, s, Event{Kind: KindToggle, CategoryID: "cafe"}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("toggle in multi mode = %v, want ErrInvalidEvent", err)
	}

	// Fixed(2, ...) makes the random draw land on the third candidate.
	s, _ = run(t, env, s, Event{Kind: KindRandom})
	if s.Step != StepRoulette || len(s.PeopleChoices) != s.Answers.People {
		t.Fatalf("step %s with %d choices, want ROULETTE with 3", s.Step, len(s.PeopleChoices))
	}
	if s.PeopleChoices[2].ID != "pizza" {
		t.Errorf("random pick = %s, want pizza", s.PeopleChoices[2].ID)
	}

	s, _ = run(t, env, s, Event{Kind: KindSpin}, Event{Kind: KindReveal})
	if s.Final.ID != "korean" {
		t.Errorf("winner = %s, want korean (slot 0)", s.Final.ID)
	}
}

func TestPeopleValidation(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"), begin, skipE, skipE, skipE, skipE, skipE)
	for _, n := range []int{0, -1, 4} {
		if _, _, err := Advance(env, s, Event{Kind: KindSubmit, People: n}); !errors.Is(err, ErrInvalidPeople) {
			t.Errorf("people %d: error = %v, want ErrInvalidPeople", n, err)
		}
	}
	env.MaxPeople = 0
	if _, _, err := Advance(env, s, Event{Kind: KindSubmit, People: DefaultMaxPeople}); err != nil {
		t.Errorf("default max people rejected: %v", err)
	}
}

func TestPriceValidation(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"), begin, skipE, skipE, skipE, skipE)
	if _, _, err := Advance(env, s, Event{Kind: KindSubmit, Price: "free"}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("error = %v, want ErrInvalidEvent", err)
	}
}

func TestNoCandidatesCanBeRelaxed(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"),
		begin, skipE, skipE,
		Event{Kind: KindSubmit, Tags: []string{"spicy", "sweet", "cheese"}},
		skipE, skipE, skipE,
	)
	if got := Candidates(env, s); len(got) != 0 {
		t.Fatalf("candidates = %v, want none", got)
	}
	v := BuildView(env, s)
	if !v.NoCandidates || v.CandidateCount != 0 {
		t.Errorf("view = %+v, want NoCandidates", v)
	}

	got, _, err := Advance(env, s, Event{Kind: KindRandom})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("random error = %v, want ErrNoCandidates", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("rejected event changed session (-want +got):\n%s", diff)
	}
	if _, _, err := Advance(env, s, Event{Kind: KindComplete}); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("complete error = %v, want ErrNoCandidates", err)
	}

	// Back to EXCLUDE and relax the tags.
	s, _ = run(t, env, s, backE, backE, backE, backE, Event{Kind: KindSubmit, Tags: []string{"spicy"}}, skipE, skipE, skipE)
	if len(Candidates(env, s)) == 0 {
		t.Error("relaxed filter should yield candidates")
	}
}

func TestStartShortcuts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		favorites []string
		blacklist []string
		ev        Event
		want      string
		route     Route
		wantErr   error
	}{
		{"direct", nil, nil, Event{Kind: KindPickDirect, CategoryID: "chinese"}, "chinese", RouteDirect, nil},
		{"direct unknown", nil, nil, Event{Kind: KindPickDirect, CategoryID: "sushi"}, "", "", ErrUnknownCategory},
		{"repick", nil, nil, Event{Kind: KindRepick, CategoryID: "cafe"}, "cafe", RouteRepick, nil},
		{"favorite in catalog order", []string{"cafe", "pizza"}, nil, Event{Kind: KindPickFavorite}, "pizza", RouteFavorite, nil},
		{"favorite skips blacklisted", []string{"cafe", "pizza"}, []string{"pizza"}, Event{Kind: KindPickFavorite}, "cafe", RouteFavorite, nil},
		{"no favorites", nil, nil, Event{Kind: KindPickFavorite}, "", "", ErrNoCandidates},
		{"submit at start", nil, nil, Event{Kind: KindSubmit}, "", "", ErrInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := testEnv(t, resolver.Fixed(0))
			for _, id := range tt.favorites {
				env.Favorites[id] = struct{}{}
			}
			for _, id := range tt.blacklist {
				env.Blacklist[id] = struct{}{}
			}
			s, tr, err := Advance(env, NewSession("s1"), tt.ev)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if s.Step != StepStart {
					t.Errorf("step = %s after error", s.Step)
				}
				return
			}
			if err != nil {
				t.Fatalf("Advance() error = %v", err)
			}
			if s.Step != StepResult || tr.Finalized == nil || tr.Finalized.ID != tt.want || tr.Route != tt.route {
				t.Errorf("got step %s finalized %v route %s", s.Step, tr.Finalized, tr.Route)
			}
		})
	}
}

func TestResetClearsSessionFields(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"),
		Event{Kind: KindBegin, MoodIDs: []string{"sweet-tooth"}},
		Event{Kind: KindSubmit, CategoryIDs: []string{"korean"}},
		Event{Kind: KindSubmit, CategoryIDs: []string{"pizza"}},
	)
	if s.Step != StepResult {
		t.Fatalf("step = %s", s.Step)
	}
	s, trs := run(t, env, s, Event{Kind: KindReset})
	if diff := cmp.Diff(NewSession("s1"), s); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
	if trs[0].From != StepResult || trs[0].To != StepStart || trs[0].Finalized != nil {
		t.Errorf("reset transition = %+v", trs[0])
	}
}

func TestRevealBeforeSpin(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s, _ := run(t, env, NewSession("s1"), begin, skipE, Event{Kind: KindSubmit, CategoryIDs: []string{"korean", "cafe"}})
	if _, _, err := Advance(env, s, Event{Kind: KindReveal}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("error = %v, want ErrInvalidEvent", err)
	}
}

func TestUnknownMoodAndDietRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prefix  []Event
		ev      Event
		step    Step
		wantErr error
		reason  string
	}{
		{"unknown mood at begin", nil, Event{Kind: KindBegin, MoodIDs: []string{"sweet-tooth", "no-such-mood"}}, StepStart, ErrUnknownMood, "unknown_mood"},
		{"unknown diet", []Event{begin, skipE, skipE, skipE}, Event{Kind: KindSubmit, DietIDs: []string{"no-such-diet"}}, StepDiet, ErrUnknownDiet, "unknown_diet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := testEnv(t, resolver.Fixed(0))
			s, _ := run(t, env, NewSession("s1"), tt.prefix...)

			got, _, err := Advance(env, s, tt.ev)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if Reason(err) != tt.reason {
				t.Errorf("Reason() = %s, want %s", Reason(err), tt.reason)
			}
			if got.Step != tt.step {
				t.Errorf("step = %s, want %s", got.Step, tt.step)
			}
			if diff := cmp.Diff(s, got); diff != "" {
				t.Errorf("session changed on rejected event (-before +after):\n%s", diff)
			}
		})
	}
}

func TestBackFromMultiPersonSelectDropsPicks(t *testing.T) {
	t.Parallel()

	env := testEnv(t, resolver.Fixed(0))
	s := toSelectMenu(t, env, 3)
	s, _ = run(t, env, s, Event{Kind: KindPick, CategoryID: "korean"})
	if s.Step != StepSelectMenu || len(s.PeopleChoices) != 1 {
		t.Fatalf("after first pick: step %s, %d choices", s.Step, len(s.PeopleChoices))
	}
	s, _ = run(t, env, s, backE)

	if s.Step != StepPeople || s.PeopleChoices != nil || s.CurrentPerson != 0 {
		t.Errorf("after back: step %s, choices %v, person %d; want PEOPLE with picks cleared", s.Step, s.PeopleChoices, s.CurrentPerson)
	}
}
