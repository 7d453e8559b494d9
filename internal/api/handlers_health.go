// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/menuroulette/internal/models"
)

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady reports readiness. An open storage breaker means preference
// writes are failing fast, so the instance is reported unavailable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:         "ready",
		StorageBreaker: "memory",
		ActiveSessions: h.sessions.Len(),
		Categories:     len(h.catalog.Categories),
		Uptime:         time.Since(h.startTime).Seconds(),
		StartedAt:      h.startTime.UTC(),
	}

	code := http.StatusOK
	if h.storage != nil {
		state := h.storage.State()
		status.StorageBreaker = state.String()
		if state == gobreaker.StateOpen {
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	respondSuccess(w, r, code, status)
}
