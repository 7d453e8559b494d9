// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

/*
Package main is the entry point for the Menu Roulette server.

The server exposes the meal decision funnel over a JSON API. Each client
creates a session and drives it with events until a category is chosen;
favorites, blacklist and history are shared by all sessions and stored in
BadgerDB.

# Process Layout

	RootSupervisor ("menuroulette")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Session sweeper
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Catalog: embedded or CATALOG_PATH
 4. Storage: BadgerDB behind a circuit breaker, or in memory
 5. Preferences store and session registry
 6. HTTP router and supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT, live sessions are closed and BadgerDB is flushed.

# Example

	export STORAGE_PATH=/var/lib/menuroulette
	export HTTP_PORT=8080
	./menuroulette

In-memory mode for development:

	STORAGE_IN_MEMORY=true LOG_FORMAT=console ./menuroulette
*/
package main
