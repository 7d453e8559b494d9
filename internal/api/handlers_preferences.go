// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/menuroulette/internal/models"
	"github.com/tomtom215/menuroulette/internal/preferences"
)

// Preferences returns favorites and blacklist.
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, models.PreferencesResponse{
		Favorites: h.store.Favorites(),
		Blacklist: h.store.Blacklist(),
	})
}

// ToggleFavorite flips favorite membership of {categoryID}.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.store.ToggleFavorite)
}

// ToggleBlacklist flips blacklist membership of {categoryID}.
func (h *Handler) ToggleBlacklist(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.store.ToggleBlacklist)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (bool, error)) {
	id := chi.URLParam(r, "categoryID")
	if !h.catalog.Contains(id) {
		respondError(w, r, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Unknown category", nil)
		return
	}

	active, err := fn(r.Context(), id)
	body := models.ToggleResponse{CategoryID: id, Active: active}
	if err != nil {
		// The in-memory change stands; tell the client which state it has.
		if errors.Is(err, preferences.ErrPersist) {
			respondErrorDetails(w, r, http.StatusInternalServerError, "PERSIST_ERROR",
				"Change applied but could not be saved", map[string]interface{}{"category_id": id, "active": active}, err)
			return
		}
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, body)
}
