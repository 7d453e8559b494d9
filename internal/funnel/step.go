// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import "fmt"

// Step is one stage of the decision funnel.
type Step int

// Steps in forward order.
const (
	StepStart Step = iota
	StepYesterday
	StepWanted
	StepExclude
	StepDiet
	StepPrice
	StepPeople
	StepSelectMenu
	StepRoulette
	StepResult
)

var stepNames = [...]string{
	StepStart:      "START",
	StepYesterday:  "YESTERDAY",
	StepWanted:     "WANTED",
	StepExclude:    "EXCLUDE",
	StepDiet:       "DIET",
	StepPrice:      "PRICE",
	StepPeople:     "PEOPLE",
	StepSelectMenu: "SELECT_MENU",
	StepRoulette:   "ROULETTE",
	StepResult:     "RESULT",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// MarshalText encodes the step by name.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by String.
func (s *Step) UnmarshalText(text []byte) error {
	for i, name := range stepNames {
		if name == string(text) {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", text)
}

// questionnaire reports whether the step is one of the answer-collecting
// steps that accept Submit and Skip.
func (s Step) questionnaire() bool {
	return s >= StepYesterday && s <= StepPeople
}
