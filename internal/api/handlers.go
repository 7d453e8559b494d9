// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/preferences"
)

// BreakerState reports the storage circuit breaker. Satisfied by
// *preferences.BadgerPersister.
type BreakerState interface {
	State() gobreaker.State
}

// HandlerConfig wires the handler's dependencies.
type HandlerConfig struct {
	Catalog  *catalog.Catalog
	Sessions *funnel.Registry
	Store    *preferences.Store

	// Storage may be nil when preferences only live in memory.
	Storage BreakerState
}

// Handler serves the HTTP API.
type Handler struct {
	catalog   *catalog.Catalog
	sessions  *funnel.Registry
	store     *preferences.Store
	storage   BreakerState
	startTime time.Time
}

// NewHandler creates a handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		catalog:   cfg.Catalog,
		sessions:  cfg.Sessions,
		store:     cfg.Store,
		storage:   cfg.Storage,
		startTime: time.Now(),
	}
}
