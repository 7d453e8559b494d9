// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

/*
Package api serves the meal-decision funnel over HTTP with chi.

# Endpoints

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /api/v1/catalog
	POST   /api/v1/candidates
	POST   /api/v1/sessions
	GET    /api/v1/sessions/{id}
	POST   /api/v1/sessions/{id}/events
	DELETE /api/v1/sessions/{id}
	GET    /api/v1/preferences
	PUT    /api/v1/preferences/favorites/{categoryID}
	PUT    /api/v1/preferences/blacklist/{categoryID}
	GET    /api/v1/history
	DELETE /api/v1/history
	DELETE /api/v1/history/{entryID}
	GET    /api/v1/stats?limit=N
	GET    /metrics

Every JSON body uses the models.APIResponse envelope.

# Error Mapping

	400 VALIDATION_ERROR, INVALID_EVENT, INVALID_PEOPLE
	404 SESSION_NOT_FOUND, CATEGORY_NOT_FOUND, MOOD_NOT_FOUND, DIET_NOT_FOUND
	409 NO_CANDIDATES, NOTHING_SELECTED, ALREADY_SPINNING
	429 RATE_LIMIT_EXCEEDED
	500 PERSIST_ERROR, INTERNAL_ERROR

# Middleware

Request ids, real IP, panic recovery, CORS (go-chi/cors) and gzip apply
to every route. The /api/v1 group adds per-IP rate limiting
(go-chi/httprate), Prometheus request metrics and a request timeout.
*/
package api
