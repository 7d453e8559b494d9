// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var (
	// ErrEmptyID is returned when a category, mood or diet has no id.
	ErrEmptyID = errors.New("catalog: empty id")

	// ErrDuplicateID is returned when two entries of the same kind share an id.
	ErrDuplicateID = errors.New("catalog: duplicate id")

	// ErrEmptyCategory is returned when a category has no items.
	ErrEmptyCategory = errors.New("catalog: category has no items")

	// ErrInvalidPrice is returned for an unknown price tier.
	ErrInvalidPrice = errors.New("catalog: invalid price tier")

	// ErrUnknownReference is returned when a mood, diet or time weight names a
	// category that does not exist.
	ErrUnknownReference = errors.New("catalog: unknown category reference")
)

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads a catalog from a YAML file. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	//nolint:gosec // path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.buildIndex()
	return &c, nil
}

// Validate checks id uniqueness, price tiers, non-empty categories and that
// every cross reference resolves.
func (c *Catalog) Validate() error {
	ids := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category #%d: %w", i, ErrEmptyID)
		}
		if _, dup := ids[cat.ID]; dup {
			return fmt.Errorf("category %q: %w", cat.ID, ErrDuplicateID)
		}
		ids[cat.ID] = struct{}{}
		if !cat.Price.Valid() {
			return fmt.Errorf("category %q price %q: %w", cat.ID, cat.Price, ErrInvalidPrice)
		}
		if len(cat.Items) == 0 {
			return fmt.Errorf("category %q: %w", cat.ID, ErrEmptyCategory)
		}
	}

	moods := make(map[string]struct{}, len(c.Moods))
	for i, m := range c.Moods {
		if m.ID == "" {
			return fmt.Errorf("mood #%d: %w", i, ErrEmptyID)
		}
		if _, dup := moods[m.ID]; dup {
			return fmt.Errorf("mood %q: %w", m.ID, ErrDuplicateID)
		}
		moods[m.ID] = struct{}{}
		if err := checkRefs(ids, m.CategoryIDs); err != nil {
			return fmt.Errorf("mood %q: %w", m.ID, err)
		}
	}

	diets := make(map[string]struct{}, len(c.Diets))
	for i, d := range c.Diets {
		if d.ID == "" {
			return fmt.Errorf("diet #%d: %w", i, ErrEmptyID)
		}
		if _, dup := diets[d.ID]; dup {
			return fmt.Errorf("diet %q: %w", d.ID, ErrDuplicateID)
		}
		diets[d.ID] = struct{}{}
		if err := checkRefs(ids, d.ExcludeCategoryIDs); err != nil {
			return fmt.Errorf("diet %q: %w", d.ID, err)
		}
	}

	for _, pr := range c.PriceRanges {
		if !pr.Tier.Valid() {
			return fmt.Errorf("price range %q: %w", pr.Tier, ErrInvalidPrice)
		}
	}

	for label, refs := range c.TimeWeights {
		if err := checkRefs(ids, refs); err != nil {
			return fmt.Errorf("time weight %q: %w", label, err)
		}
	}
	return nil
}

func checkRefs(ids map[string]struct{}, refs []string) error {
	for _, ref := range refs {
		if _, ok := ids[ref]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownReference, ref)
		}
	}
	return nil
}
