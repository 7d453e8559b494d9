// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package models

import (
	"time"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/preferences"
)

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	View      funnel.View `json:"view"`
}

// CandidatesResponse is the stateless pipeline result.
type CandidatesResponse struct {
	Base       []catalog.Category `json:"base"`
	MoodDiet   []catalog.Category `json:"mood_diet"`
	TagPrice   []catalog.Category `json:"tag_price"`
	Candidates []catalog.Category `json:"candidates"`
}

// PreferencesResponse lists favorites and blacklist ids, sorted.
type PreferencesResponse struct {
	Favorites []string `json:"favorites"`
	Blacklist []string `json:"blacklist"`
}

// ToggleResponse reports membership after a toggle.
type ToggleResponse struct {
	CategoryID string `json:"category_id"`
	Active     bool   `json:"active"`
}

// HistoryResponse lists history entries newest first.
type HistoryResponse struct {
	Entries []preferences.Entry `json:"entries"`
	Max     int                 `json:"max"`
}

// StatsResponse ranks categories by how often they were chosen.
type StatsResponse struct {
	Stats []preferences.StatEntry `json:"stats"`
	Total int                     `json:"total"`
}

// HealthStatus is the readiness check body.
type HealthStatus struct {
	Status         string    `json:"status"`
	StorageBreaker string    `json:"storage_breaker"`
	ActiveSessions int       `json:"active_sessions"`
	Categories     int       `json:"categories"`
	Uptime         float64   `json:"uptime_seconds"`
	StartedAt      time.Time `json:"started_at"`
}
