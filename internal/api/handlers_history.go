// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/menuroulette/internal/models"
	"github.com/tomtom215/menuroulette/internal/preferences"
)

// maxStatsLimit caps ?limit on /stats.
const maxStatsLimit = 100

// History returns the recorded picks, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	h.respondHistory(w, r, http.StatusOK)
}

// DeleteHistoryEntry removes one entry. Unknown ids are not an error.
func (h *Handler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveHistory(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.respondHistory(w, r, http.StatusOK)
}

// ClearHistory removes every entry.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearHistory(r.Context()); err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.respondHistory(w, r, http.StatusOK)
}

func (h *Handler) respondHistory(w http.ResponseWriter, r *http.Request, status int) {
	respondSuccess(w, r, status, models.HistoryResponse{
		Entries: h.store.History(),
		Max:     preferences.MaxHistory,
	})
}

// Stats ranks categories by pick count. ?limit=N keeps the top N, 0 keeps all.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", 0)
	if limit < 0 || limit > maxStatsLimit {
		respondErrorDetails(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 0 and 100",
			map[string]interface{}{"field": "limit"}, nil)
		return
	}

	stats := h.store.Stats()
	total := 0
	for _, s := range stats {
		total += s.Count
	}
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	respondSuccess(w, r, http.StatusOK, models.StatsResponse{Stats: stats, Total: total})
}
