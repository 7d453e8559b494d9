// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

/*
Package config loads and validates process configuration.

# Configuration Sources

Values are layered with Koanf v2, later layers winning:
  - Built-in defaults (defaultConfig)
  - YAML file: config.yaml, config.yml, /etc/menuroulette/config.yaml, or CONFIG_PATH
  - Environment variables, mapped through an explicit table

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Storage and catalog:
  - STORAGE_PATH: BadgerDB directory for favorites, blacklist and history
  - STORAGE_IN_MEMORY: true keeps preferences in memory only
  - CATALOG_PATH: YAML catalog; empty uses the built-in one

Funnel:
  - MAX_PEOPLE (default 3)
  - SPIN_DELAY roulette animation before reveal (default 4s)
  - RANDOM_SEED fixed seed for reproducible draws, 0 = time seeded

Sessions:
  - SESSION_TTL idle lifetime (default 30m)
  - SESSION_MAX_ENTRIES (default 10000)
  - SESSION_SWEEP_INTERVAL (default 1m)

Security:
  - CORS_ORIGINS comma-separated (default *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Unknown environment variables are ignored.

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	srv := &http.Server{Addr: cfg.Server.Addr()}
*/
package config
