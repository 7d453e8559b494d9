// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/logging"
	"github.com/tomtom215/menuroulette/internal/models"
)

// EventRequest is the body of POST /sessions/{id}/events.
type EventRequest struct {
	Kind        string            `json:"kind" validate:"required,oneof=begin pick_direct pick_favorite repick submit skip back toggle random complete search pick spin reveal reset"`
	CategoryIDs []string          `json:"category_ids" validate:"max=100,dive,slug"`
	Tags        []string          `json:"tags" validate:"max=100,dive,min=1,max=64"`
	DietIDs     []string          `json:"diet_ids" validate:"max=20,dive,slug"`
	MoodIDs     []string          `json:"mood_ids" validate:"max=20,dive,slug"`
	Price       catalog.PriceTier `json:"price" validate:"omitempty,price_tier"`
	People      int               `json:"people" validate:"gte=0,lte=100"`
	CategoryID  string            `json:"category_id" validate:"omitempty,slug"`
	Text        string            `json:"text" validate:"max=100"`
}

func (req EventRequest) toEvent() funnel.Event {
	return funnel.Event{
		Kind:        funnel.Kind(req.Kind),
		CategoryIDs: req.CategoryIDs,
		Tags:        req.Tags,
		DietIDs:     req.DietIDs,
		MoodIDs:     req.MoodIDs,
		Price:       req.Price,
		People:      req.People,
		CategoryID:  req.CategoryID,
		Text:        strings.TrimSpace(req.Text),
	}
}

// sessionContext tags the request logger with the session id.
func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.ContextWithSessionID(r.Context(), chi.URLParam(r, "id"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CreateSession starts a funnel at START.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	runner := h.sessions.Create()
	logging.Ctx(r.Context()).Info().Str("session_id", runner.ID()).Msg("Session created")
	respondSuccess(w, r, http.StatusCreated, models.SessionResponse{
		SessionID: runner.ID(),
		View:      runner.View(),
	})
}

// GetSession returns the current view. Polling it after a spin shows the
// final category once the reveal has fired.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	runner, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, runner.View())
}

// PostEvent applies one event. A rejected event returns the error envelope
// with the unchanged step in details.
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	runner, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	var req EventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	view, err := runner.Dispatch(r.Context(), req.toEvent())
	if err != nil {
		spec := specFor(err)
		respondErrorDetails(w, r, spec.status, spec.code, spec.message, map[string]interface{}{
			"step":  view.Step.String(),
			"event": req.Kind,
		}, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, view)
}

// DeleteSession abandons a session and cancels a pending reveal.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
