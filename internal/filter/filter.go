// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package filter

import (
	"slices"
	"strings"

	"github.com/tomtom215/menuroulette/internal/catalog"
)

// Context is the immutable input of one pipeline evaluation. A zero Context
// applies no filters at all.
type Context struct {
	// ExcludedCategoryIDs is the merged prior-day, blacklist and manual
	// exclusion set. Where an id came from is not tracked.
	ExcludedCategoryIDs []string `json:"excluded_category_ids,omitempty"`

	ExcludedTags []string          `json:"excluded_tags,omitempty"`
	MoodIDs      []string          `json:"mood_ids,omitempty"`
	DietIDs      []string          `json:"diet_ids,omitempty"`
	Price        catalog.PriceTier `json:"price,omitempty"`
	Search       string            `json:"search,omitempty"`
}

// Result carries the two independent views derived from the base set.
type Result struct {
	// Base is the catalog minus excluded ids and empty categories.
	Base []catalog.Category `json:"base"`

	// MoodDiet is Base narrowed by moods and then diets. Items are not pruned.
	MoodDiet []catalog.Category `json:"mood_diet"`

	// TagPrice is Base with excluded-tag items pruned, then narrowed by price
	// and search text.
	TagPrice []catalog.Category `json:"tag_price"`
}

// Candidates returns the categories present in both views, in catalog order,
// carrying the pruned item lists of the TagPrice view.
func (r Result) Candidates() []catalog.Category {
	inMoodDiet := make(map[string]struct{}, len(r.MoodDiet))
	for _, c := range r.MoodDiet {
		inMoodDiet[c.ID] = struct{}{}
	}
	out := make([]catalog.Category, 0, len(r.TagPrice))
	for _, c := range r.TagPrice {
		if _, ok := inMoodDiet[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// RunPipeline evaluates every stage and returns the fully filtered candidates.
// An empty result is a normal outcome, not an error.
func RunPipeline(cat *catalog.Catalog, ctx Context) []catalog.Category {
	return Run(cat, ctx).Candidates()
}

// Run evaluates every stage and returns both views. The catalog is never
// modified; categories with pruned items are fresh copies.
func Run(cat *catalog.Catalog, ctx Context) Result {
	base := baseExclusion(cat.Categories, toSet(ctx.ExcludedCategoryIDs))

	moodDiet := dietExclusion(moodInclusion(base, cat, ctx.MoodIDs), cat, ctx.DietIDs)

	tagPrice := searchText(priceFilter(tagExclusion(base, toSet(ctx.ExcludedTags)), ctx.Price), ctx.Search)

	return Result{Base: base, MoodDiet: moodDiet, TagPrice: tagPrice}
}

func baseExclusion(categories []catalog.Category, excluded map[string]struct{}) []catalog.Category {
	out := make([]catalog.Category, 0, len(categories))
	for _, c := range categories {
		if len(c.Items) == 0 {
			continue
		}
		if _, ok := excluded[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// moodInclusion keeps a category when a selected mood names it directly, or
// when it has a recommended-tag item and no mood-excluded-tag item.
func moodInclusion(in []catalog.Category, cat *catalog.Catalog, moodIDs []string) []catalog.Category {
	if len(moodIDs) == 0 {
		return in
	}

	ids := make(map[string]struct{})
	tags := make(map[string]struct{})
	excludeTags := make(map[string]struct{})
	for _, id := range moodIDs {
		m, ok := cat.Mood(id)
		if !ok {
			continue
		}
		addAll(ids, m.CategoryIDs)
		addAll(tags, m.Tags)
		addAll(excludeTags, m.ExcludeTags)
	}

	out := make([]catalog.Category, 0, len(in))
	for _, c := range in {
		if _, ok := ids[c.ID]; ok {
			out = append(out, c)
			continue
		}
		recommended, blocked := false, false
		for _, item := range c.Items {
			if item.HasAnyTag(tags) {
				recommended = true
			}
			if item.HasAnyTag(excludeTags) {
				blocked = true
				break
			}
		}
		if recommended && !blocked {
			out = append(out, c)
		}
	}
	return out
}

// dietExclusion drops a category named by a diet, or one in which every item
// carries a diet-excluded tag.
func dietExclusion(in []catalog.Category, cat *catalog.Catalog, dietIDs []string) []catalog.Category {
	if len(dietIDs) == 0 {
		return in
	}

	ids := make(map[string]struct{})
	tags := make(map[string]struct{})
	for _, id := range dietIDs {
		d, ok := cat.Diet(id)
		if !ok {
			continue
		}
		addAll(ids, d.ExcludeCategoryIDs)
		addAll(tags, d.ExcludeTags)
	}

	out := make([]catalog.Category, 0, len(in))
	for _, c := range in {
		if _, ok := ids[c.ID]; ok {
			continue
		}
		safe := false
		for _, item := range c.Items {
			if !item.HasAnyTag(tags) {
				safe = true
				break
			}
		}
		if safe {
			out = append(out, c)
		}
	}
	return out
}

func tagExclusion(in []catalog.Category, excluded map[string]struct{}) []catalog.Category {
	if len(excluded) == 0 {
		return in
	}

	out := make([]catalog.Category, 0, len(in))
	for _, c := range in {
		items := make([]catalog.MenuItem, 0, len(c.Items))
		for _, item := range c.Items {
			if !item.HasAnyTag(excluded) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		pruned := c
		pruned.Items = items
		out = append(out, pruned)
	}
	return out
}

func priceFilter(in []catalog.Category, price catalog.PriceTier) []catalog.Category {
	if price == "" {
		return in
	}
	out := make([]catalog.Category, 0, len(in))
	for _, c := range in {
		if c.Price == price {
			out = append(out, c)
		}
	}
	return out
}

// searchText keeps categories whose name, or any remaining item name,
// contains the query. Matching ignores case.
func searchText(in []catalog.Category, query string) []catalog.Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return in
	}
	out := make([]catalog.Category, 0, len(in))
	for _, c := range in {
		if matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c catalog.Category, q string) bool {
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	return slices.ContainsFunc(c.Items, func(item catalog.MenuItem) bool {
		return strings.Contains(strings.ToLower(item.Name), q)
	})
}

// MergeExclusions unions id lists into one sorted, duplicate-free list.
func MergeExclusions(lists ...[]string) []string {
	set := make(map[string]struct{})
	for _, l := range lists {
		addAll(set, l)
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	addAll(set, values)
	return set
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		set[v] = struct{}{}
	}
}
