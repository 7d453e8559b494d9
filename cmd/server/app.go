// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tomtom215/menuroulette/internal/api"
	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/config"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/logging"
	"github.com/tomtom215/menuroulette/internal/preferences"
	"github.com/tomtom215/menuroulette/internal/resolver"
	"github.com/tomtom215/menuroulette/internal/supervisor"
	"github.com/tomtom215/menuroulette/internal/supervisor/services"
)

// app holds everything main wires together.
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	storage  *preferences.BadgerPersister
	store    *preferences.Store
	sessions *funnel.Registry
	server   *http.Server
	closers  []io.Closer
}

// newApp builds the app from cfg. On error everything opened so far is
// closed again.
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.catalog, err = catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logging.Info().
		Int("categories", len(a.catalog.Categories)).
		Str("path", cfg.Catalog.Path).
		Msg("Catalog loaded")

	a.storage, err = preferences.OpenBadger(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.closers = append(a.closers, a.storage)
	logging.Info().
		Str("path", cfg.Storage.Path).
		Bool("in_memory", cfg.Storage.InMemory).
		Msg("Storage opened")

	a.store, err = preferences.Open(ctx, a.storage, preferences.Options{})
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	a.sessions = funnel.NewRegistry(funnel.RunnerConfig{
		Catalog:   a.catalog,
		Store:     a.store,
		RNG:       resolver.NewSeeded(cfg.Funnel.Seed),
		Clock:     clock.System{},
		MaxPeople: cfg.Funnel.MaxPeople,
		SpinDelay: cfg.Funnel.SpinDelay,
	}, funnel.RegistryConfig{
		TTL:        cfg.Sessions.TTL,
		MaxEntries: cfg.Sessions.MaxEntries,
	})

	handler := api.NewHandler(api.HandlerConfig{
		Catalog:  a.catalog,
		Sessions: a.sessions,
		Store:    a.store,
		Storage:  a.storage,
	})
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	))

	a.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, mw).Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

// addServices registers the app's long-running services with tree.
func (a *app) addServices(tree *supervisor.SupervisorTree) {
	tree.AddMaintenanceService(services.NewSessionSweeperService(a.sessions, a.cfg.Sessions.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(a.server, a.cfg.Server.ShutdownTimeout))
}

// Close closes live sessions and storage. Safe on a partially built app.
func (a *app) Close() {
	if a.sessions != nil {
		a.sessions.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}
	a.closers = nil
}
