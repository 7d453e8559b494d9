// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/menuroulette/internal/funnel"
)

const fixtureYAML = `
categories:
  - id: korean
    name: Korean
    price: medium
    items:
      - {name: Kimchi stew, tags: [spicy, soup]}
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
diets:
  - {id: dairy-free, name: Dairy free, exclude_tags: [cream, cheese], exclude_category_ids: []}
`

// cli runs menuctl commands against one temporary installation.
type cli struct {
	storage string
	catalog string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	cat := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(cat, []byte(fixtureYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	return &cli{storage: filepath.Join(dir, "badger"), catalog: cat}
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--storage", c.storage, "--catalog", c.catalog, "--log-level", "disabled"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(t, args...)
	if err != nil {
		t.Fatalf("menuctl %v: %v", args, err)
	}
	return out
}

func TestToggleCommandsPersist(t *testing.T) {
	c := newCLI(t)

	if out := c.mustRun(t, "favorites", "toggle", "pizza"); !strings.Contains(out, "pizza is now favorite") {
		t.Errorf("toggle output = %q", out)
	}
	c.mustRun(t, "blacklist", "toggle", "korean")

	if out := c.mustRun(t, "favorites"); strings.TrimSpace(out) != "pizza" {
		t.Errorf("favorites = %q, want pizza", out)
	}
	if out := c.mustRun(t, "blacklist"); strings.TrimSpace(out) != "korean" {
		t.Errorf("blacklist = %q, want korean", out)
	}

	out := c.mustRun(t, "catalog")
	if !strings.Contains(out, "favorite") || !strings.Contains(out, "blacklisted") || !strings.Contains(out, "diet dairy-free") {
		t.Errorf("catalog output = %q", out)
	}

	if out := c.mustRun(t, "favorites", "toggle", "pizza"); !strings.Contains(out, "no longer favorite") {
		t.Errorf("second toggle output = %q", out)
	}

	_, err := c.run(t, "favorites", "toggle", "sushi")
	if !errors.Is(err, errUnknownCategory) {
		t.Errorf("unknown category error = %v", err)
	}
}

func TestPickRecordsHistory(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(t, "pick", "--tags", "spicy", "--price", "low", "--seed", "3")
	if !strings.Contains(out, "Cafe (cafe) via random") {
		t.Fatalf("pick output = %q", out)
	}
	if !strings.Contains(out, "- Cake") {
		t.Errorf("recommended items missing: %q", out)
	}

	out = c.mustRun(t, "pick", "--people", "2", "--price", "low", "--seed", "1")
	if !strings.Contains(out, "wheel: cafe, cafe") || !strings.Contains(out, "via roulette") {
		t.Fatalf("two-person pick output = %q", out)
	}

	// korean is spicy, pizza and cafe carry dairy tags.
	_, err := c.run(t, "pick", "--tags", "spicy", "--diets", "dairy-free")
	if !errors.Is(err, funnel.ErrNoCandidates) {
		t.Errorf("empty pick error = %v, want ErrNoCandidates", err)
	}

	hist := c.mustRun(t, "history")
	if lines := strings.Split(strings.TrimSpace(hist), "\n"); len(lines) != 3 {
		t.Errorf("history lines = %d, want header plus two entries:\n%s", len(lines), hist)
	}
	if stats := c.mustRun(t, "stats", "--limit", "1"); !strings.Contains(stats, "cafe") || !strings.Contains(stats, "2") {
		t.Errorf("stats = %q", stats)
	}
	if _, err := c.run(t, "stats", "--limit", "-1"); err == nil {
		t.Error("negative limit should fail")
	}

	c.mustRun(t, "history", "clear")
	if lines := strings.Split(strings.TrimSpace(c.mustRun(t, "history")), "\n"); len(lines) != 1 {
		t.Errorf("history after clear has %d lines, want header only", len(lines))
	}
}
