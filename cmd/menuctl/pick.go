// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

type pickFlags struct {
	moods     []string
	yesterday []string
	excluded  []string
	tags      []string
	diets     []string
	price     string
	people    int
	seed      int64
}

func newPickCmd(flags *globalFlags) *cobra.Command {
	var pf pickFlags
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Run the funnel headless and print the chosen category",
		Long: `pick answers every question from flags, lets each person draw a random
candidate (favorites first) and spins the roulette if more than one person
takes part. The result is recorded in the history like a pick from the API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				view, err := runPick(ctx, e, pf)
				if err != nil {
					return err
				}
				printResult(e, view)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&pf.moods, "moods", nil, "mood ids")
	f.StringSliceVar(&pf.yesterday, "yesterday", nil, "categories eaten yesterday")
	f.StringSliceVar(&pf.excluded, "exclude", nil, "categories to exclude")
	f.StringSliceVar(&pf.tags, "tags", nil, "menu tags to exclude")
	f.StringSliceVar(&pf.diets, "diets", nil, "diet restriction ids")
	f.StringVar(&pf.price, "price", "", "price tier: low, medium or high")
	f.IntVar(&pf.people, "people", 1, "number of people drawing a candidate")
	f.Int64Var(&pf.seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

// runPick drives one session from START to RESULT.
func runPick(ctx context.Context, e *env, pf pickFlags) (funnel.View, error) {
	runner := funnel.NewRunner("menuctl", funnel.RunnerConfig{
		Catalog:   e.catalog,
		Store:     e.store,
		RNG:       resolver.NewSeeded(pf.seed),
		MaxPeople: max(pf.people, funnel.DefaultMaxPeople),
	})
	defer runner.Close()

	events := []funnel.Event{
		{Kind: funnel.KindBegin, MoodIDs: pf.moods},
		{Kind: funnel.KindSubmit, CategoryIDs: pf.yesterday},
		{Kind: funnel.KindSkip},
		{Kind: funnel.KindSubmit, CategoryIDs: pf.excluded, Tags: pf.tags},
		{Kind: funnel.KindSubmit, DietIDs: pf.diets},
		{Kind: funnel.KindSubmit, Price: catalog.PriceTier(pf.price)},
		{Kind: funnel.KindSubmit, People: pf.people},
	}
	for i := 0; i < pf.people; i++ {
		events = append(events, funnel.Event{Kind: funnel.KindRandom})
	}
	if pf.people > 1 {
		events = append(events, funnel.Event{Kind: funnel.KindSpin})
	}

	var view funnel.View
	for _, ev := range events {
		var err error
		view, err = runner.Dispatch(ctx, ev)
		if err != nil {
			return view, fmt.Errorf("%s at %s: %w", ev.Kind, view.Step, err)
		}
	}
	if view.Final == nil {
		return view, fmt.Errorf("funnel stopped at %s", view.Step)
	}
	return view, nil
}

func printResult(e *env, view funnel.View) {
	if len(view.PeopleChoices) > 1 {
		names := make([]string, len(view.PeopleChoices))
		for i, c := range view.PeopleChoices {
			names[i] = c.ID
		}
		fmt.Fprintf(e.out, "wheel: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(e.out, "%s (%s) via %s\n", view.Final.Name, view.Final.ID, view.Route)
	for _, item := range view.Recommended {
		fmt.Fprintf(e.out, "  - %s\n", item.Name)
	}
}
