// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package validation validates API request bodies with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so building one per request would be wasteful. Failures are
// translated into the VALIDATION_ERROR body used by every API handler.
//
//	type EventRequest struct {
//	    Kind       string   `json:"kind" validate:"required,oneof=begin submit skip"`
//	    People     int      `json:"people" validate:"gte=0,lte=10"`
//	    CategoryID string   `json:"category_id" validate:"omitempty,slug"`
//	}
package validation
