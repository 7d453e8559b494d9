// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"net/http"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/filter"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/metrics"
	"github.com/tomtom215/menuroulette/internal/models"
)

// Catalog returns categories, moods, diets, exclude tags and price ranges.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.catalog)
}

// CandidatesRequest is a filter context posted to the stateless pipeline.
type CandidatesRequest struct {
	ExcludedCategoryIDs []string          `json:"excluded_category_ids" validate:"max=100,dive,slug"`
	ExcludedTags        []string          `json:"excluded_tags" validate:"max=100,dive,min=1,max=64"`
	MoodIDs             []string          `json:"mood_ids" validate:"max=20,dive,slug"`
	DietIDs             []string          `json:"diet_ids" validate:"max=20,dive,slug"`
	Price               catalog.PriceTier `json:"price" validate:"omitempty,price_tier"`
	Search              string            `json:"search" validate:"max=100"`

	// IncludeBlacklist merges the stored blacklist into the excluded ids.
	IncludeBlacklist bool `json:"include_blacklist"`
}

// Candidates runs the filter pipeline without touching any session.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	var req CandidatesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	for _, check := range []error{
		funnel.CheckMoods(h.catalog, req.MoodIDs),
		funnel.CheckDiets(h.catalog, req.DietIDs),
	} {
		if check != nil {
			respondDomainError(w, r, check)
			return
		}
	}

	excluded := req.ExcludedCategoryIDs
	if req.IncludeBlacklist {
		excluded = filter.MergeExclusions(excluded, h.store.Blacklist())
	}

	res := filter.Run(h.catalog, filter.Context{
		ExcludedCategoryIDs: excluded,
		ExcludedTags:        req.ExcludedTags,
		MoodIDs:             req.MoodIDs,
		DietIDs:             req.DietIDs,
		Price:               req.Price,
		Search:              req.Search,
	})
	candidates := res.Candidates()
	metrics.RecordCandidates(len(candidates))

	respondSuccess(w, r, http.StatusOK, models.CandidatesResponse{
		Base:       res.Base,
		MoodDiet:   res.MoodDiet,
		TagPrice:   res.TagPrice,
		Candidates: candidates,
	})
}
