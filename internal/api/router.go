// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/menuroulette/internal/middleware"
)

// Router binds the handler to chi routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup returns the fully wired HTTP handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global for OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	// Health checks are not rate limited.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Timeout(30 * time.Second))

		r.Get("/catalog", router.handler.Catalog)
		r.Post("/candidates", router.handler.Candidates)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", router.handler.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(sessionContext)
				r.Get("/", router.handler.GetSession)
				r.Delete("/", router.handler.DeleteSession)
				r.Post("/events", router.handler.PostEvent)
			})
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", router.handler.Preferences)
			r.Put("/favorites/{categoryID}", router.handler.ToggleFavorite)
			r.Put("/blacklist/{categoryID}", router.handler.ToggleBlacklist)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", router.handler.History)
			r.Delete("/", router.handler.ClearHistory)
			r.Delete("/{entryID}", router.handler.DeleteHistoryEntry)
		})

		r.Get("/stats", router.handler.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
