// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/menuroulette/internal/preferences"
)

// errUnknownCategory is returned when an id is not in the catalog.
var errUnknownCategory = errors.New("unknown category")

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List categories, moods and diets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(_ context.Context, e *env) error {
				w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tPRICE\tITEMS\tFLAGS")
				for _, c := range e.catalog.Categories {
					var marks []string
					if e.store.IsFavorite(c.ID) {
						marks = append(marks, "favorite")
					}
					if e.store.IsBlacklisted(c.ID) {
						marks = append(marks, "blacklisted")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Price, len(c.Items), strings.Join(marks, ","))
				}
				if err := w.Flush(); err != nil {
					return err
				}

				if len(e.catalog.Moods) > 0 {
					fmt.Fprintln(e.out)
					for _, m := range e.catalog.Moods {
						fmt.Fprintf(e.out, "mood %s: %s\n", m.ID, m.Name)
					}
				}
				for _, d := range e.catalog.Diets {
					fmt.Fprintf(e.out, "diet %s: %s\n", d.ID, d.Name)
				}
				return nil
			})
		},
	}
}

// newToggleListCmd builds the favorites and blacklist commands, which only
// differ in the set they touch.
func newToggleListCmd(
	flags *globalFlags,
	use, adjective string,
	list func(*preferences.Store) []string,
	toggle func(*preferences.Store) func(context.Context, string) (bool, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("List %s categories", adjective),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(_ context.Context, e *env) error {
				for _, id := range list(e.store) {
					fmt.Fprintln(e.out, id)
				}
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle ID",
		Short: fmt.Sprintf("Toggle whether a category is %s", adjective),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				id := args[0]
				if !e.catalog.Contains(id) {
					return fmt.Errorf("%w: %q", errUnknownCategory, id)
				}
				active, err := toggle(e.store)(ctx, id)
				if err != nil {
					return err
				}
				state := "no longer " + adjective
				if active {
					state = "now " + adjective
				}
				fmt.Fprintf(e.out, "%s is %s\n", id, state)
				return nil
			})
		},
	})
	return cmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent picks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(_ context.Context, e *env) error {
				w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCATEGORY\tWHEN\tSLOT")
				for _, h := range e.store.History() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.ID, h.Category.ID, h.Timestamp.Local().Format(time.DateTime), h.TimeOfDay)
				}
				return w.Flush()
			})
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "rm ID",
			Short: "Remove one history entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
					return e.store.RemoveHistory(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every history entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
					return e.store.ClearHistory(ctx)
				})
			},
		},
	)
	return cmd
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Rank categories by pick count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}
			return withEnv(cmd, flags, func(_ context.Context, e *env) error {
				stats := e.store.Stats()
				if limit > 0 && len(stats) > limit {
					stats = stats[:limit]
				}
				w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CATEGORY\tCOUNT\tLAST")
				for _, s := range stats {
					fmt.Fprintf(w, "%s\t%d\t%s\n", s.CategoryID, s.Count, s.LastPicked.Local().Format(time.DateTime))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the top N categories")
	return cmd
}
