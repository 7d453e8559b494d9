// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package models

import (
	"time"
)

// APIResponse wraps every HTTP response body.
//
// Status is "success" or "error". Error is only set on failure.
//
//	{
//	  "status": "success",
//	  "data": {"session_id": "…", "step": "START", …},
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z"}
//	}
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z"},
//	  "error": {"code": "NO_CANDIDATES", "message": "No category survives the current filters"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata is attached to every response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Count     int       `json:"count,omitempty"`
}

// APIError is the error body.
//
// Codes used by the API:
//   - VALIDATION_ERROR: request body or query failed validation
//   - INVALID_EVENT: event not allowed at the current step
//   - INVALID_PEOPLE: people count out of range
//   - NOTHING_SELECTED: complete with an empty selection
//   - NO_CANDIDATES: no category survives the filters
//   - ALREADY_SPINNING: roulette already spun
//   - SESSION_NOT_FOUND, CATEGORY_NOT_FOUND, MOOD_NOT_FOUND, DIET_NOT_FOUND
//   - PERSIST_ERROR: preference change kept in memory but not written
//   - RATE_LIMIT_EXCEEDED
//   - INTERNAL_ERROR
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
