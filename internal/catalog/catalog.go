// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package catalog

import (
	"slices"
)

// PriceTier is the coarse price band of a category.
type PriceTier string

const (
	PriceLow    PriceTier = "low"
	PriceMedium PriceTier = "medium"
	PriceHigh   PriceTier = "high"
)

// Valid reports whether p is one of the known tiers.
func (p PriceTier) Valid() bool {
	switch p {
	case PriceLow, PriceMedium, PriceHigh:
		return true
	default:
		return false
	}
}

// MenuItem is a single dish inside a category.
type MenuItem struct {
	Name string   `yaml:"name" json:"name"`
	Tags []string `yaml:"tags" json:"tags"`
}

// HasAnyTag reports whether the item carries at least one tag from set.
func (m MenuItem) HasAnyTag(set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, tag := range m.Tags {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}

// Category is the unit of choice. IDs are unique across a catalog.
type Category struct {
	ID    string     `yaml:"id" json:"id"`
	Name  string     `yaml:"name" json:"name"`
	Icon  string     `yaml:"icon" json:"icon"`
	Price PriceTier  `yaml:"price" json:"price"`
	Items []MenuItem `yaml:"items" json:"items"`
}

// Clone returns a copy that shares no slices with c.
func (c Category) Clone() Category {
	out := c
	out.Items = make([]MenuItem, len(c.Items))
	for i, item := range c.Items {
		out.Items[i] = MenuItem{Name: item.Name, Tags: slices.Clone(item.Tags)}
	}
	return out
}

// Mood pulls categories in, either directly by id or through item tags.
type Mood struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Icon        string   `yaml:"icon" json:"icon"`
	Group       string   `yaml:"group" json:"group"`
	CategoryIDs []string `yaml:"category_ids" json:"category_ids"`
	Tags        []string `yaml:"tags" json:"tags"`
	ExcludeTags []string `yaml:"exclude_tags" json:"exclude_tags"`
}

// DietRestriction removes categories by id or when every item is disallowed.
type DietRestriction struct {
	ID                 string   `yaml:"id" json:"id"`
	Name               string   `yaml:"name" json:"name"`
	Icon               string   `yaml:"icon" json:"icon"`
	Description        string   `yaml:"description" json:"description"`
	ExcludeCategoryIDs []string `yaml:"exclude_category_ids" json:"exclude_category_ids"`
	ExcludeTags        []string `yaml:"exclude_tags" json:"exclude_tags"`
}

// ExcludeTagOption is a toggle offered when the user excludes kinds of food.
type ExcludeTagOption struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
	Tag  string `yaml:"tag" json:"tag"`
}

// PriceRange describes one selectable price tier.
type PriceRange struct {
	Tier PriceTier `yaml:"tier" json:"tier"`
	Name string    `yaml:"name" json:"name"`
	Icon string    `yaml:"icon" json:"icon"`
}

// Catalog is the immutable set of categories and the option lists that refer to them.
// Build one with Parse, Load or Default; the zero value is empty and unindexed.
type Catalog struct {
	Categories  []Category          `yaml:"categories" json:"categories"`
	Moods       []Mood              `yaml:"moods" json:"moods"`
	Diets       []DietRestriction   `yaml:"diets" json:"diets"`
	ExcludeTags []ExcludeTagOption  `yaml:"exclude_tags" json:"exclude_tags"`
	PriceRanges []PriceRange        `yaml:"price_ranges" json:"price_ranges"`
	TimeWeights map[string][]string `yaml:"time_weights" json:"time_weights"`

	categoryIndex map[string]int
	moodIndex     map[string]int
	dietIndex     map[string]int
}

func (c *Catalog) buildIndex() {
	c.categoryIndex = make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		c.categoryIndex[cat.ID] = i
	}
	c.moodIndex = make(map[string]int, len(c.Moods))
	for i, m := range c.Moods {
		c.moodIndex[m.ID] = i
	}
	c.dietIndex = make(map[string]int, len(c.Diets))
	for i, d := range c.Diets {
		c.dietIndex[d.ID] = i
	}
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.categoryIndex[id]
	if !ok {
		return Category{}, false
	}
	return c.Categories[i], true
}

// Contains reports whether a category with this id exists.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.categoryIndex[id]
	return ok
}

// Mood looks up a mood by id.
func (c *Catalog) Mood(id string) (Mood, bool) {
	i, ok := c.moodIndex[id]
	if !ok {
		return Mood{}, false
	}
	return c.Moods[i], true
}

// Diet looks up a diet restriction by id.
func (c *Catalog) Diet(id string) (DietRestriction, bool) {
	i, ok := c.dietIndex[id]
	if !ok {
		return DietRestriction{}, false
	}
	return c.Diets[i], true
}

// Position returns the catalog order of a category, or -1.
func (c *Catalog) Position(id string) int {
	if i, ok := c.categoryIndex[id]; ok {
		return i
	}
	return -1
}

// IDs returns every category id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		ids[i] = cat.ID
	}
	return ids
}

// Suggested returns the categories weighted for a time-of-day label, in the
// order the weights list them. Unknown labels yield nil.
func (c *Catalog) Suggested(timeOfDay string) []Category {
	ids := c.TimeWeights[timeOfDay]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Category, 0, len(ids))
	for _, id := range ids {
		if cat, ok := c.Category(id); ok {
			out = append(out, cat)
		}
	}
	return out
}
