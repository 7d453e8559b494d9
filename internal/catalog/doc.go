// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package catalog holds the static food data every other package reads from.
//
// A catalog is a list of categories (the unit of choice), each with priced
// menu items and free-form tags, plus the option lists that refer to them:
// moods, diet restrictions, exclude-tag toggles, price ranges and time-of-day
// suggestion weights.
//
// The default catalog is embedded from default_catalog.yaml. Operators can
// point catalog.path at another YAML file with the same shape:
//
//	cat, err := catalog.Load(cfg.Catalog.Path)
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load catalog")
//	}
//
// Catalogs are validated on load and never mutated afterwards, so a single
// instance is shared across sessions without locking.
package catalog
