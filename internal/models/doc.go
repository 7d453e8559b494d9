// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package models holds the JSON shapes of the HTTP API: the response
// envelope and the bodies that are not plain domain types.
package models
