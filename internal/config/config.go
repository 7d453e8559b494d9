// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the full process configuration.
//
// Loading Priority:
//  1. Built-in defaults
//  2. Config file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Storage  StorageConfig  `koanf:"storage"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Funnel   FunnelConfig   `koanf:"funnel"`
	Sessions SessionsConfig `koanf:"sessions"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	// ShutdownTimeout bounds graceful shutdown of the HTTP listener.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StorageConfig selects where favorites, blacklist and history are kept.
//
// Environment Variables:
//   - STORAGE_PATH: BadgerDB directory (default: /data/menuroulette)
//   - STORAGE_IN_MEMORY: keep everything in memory, nothing survives restart
type StorageConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// CatalogConfig points at an optional catalog YAML file.
// An empty path uses the built-in catalog.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// FunnelConfig tunes the decision funnel.
type FunnelConfig struct {
	// MaxPeople is the upper bound accepted at the PEOPLE step.
	MaxPeople int `koanf:"max_people"`

	// SpinDelay is how long a roulette spin animates before the reveal.
	// Zero reveals immediately.
	SpinDelay time.Duration `koanf:"spin_delay"`

	// Seed makes random draws reproducible. Zero seeds from the clock.
	Seed int64 `koanf:"seed"`
}

// SessionsConfig bounds the in-memory funnel session registry.
type SessionsConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	MaxEntries    int           `koanf:"max_entries"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration with the layered Koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
