// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/config"
	"github.com/tomtom215/menuroulette/internal/logging"
	"github.com/tomtom215/menuroulette/internal/preferences"
)

// globalFlags are shared by every subcommand. Empty values fall back to the
// server configuration.
type globalFlags struct {
	storage  string
	catalog  string
	logLevel string
}

// env is what a subcommand works against.
type env struct {
	out     io.Writer
	catalog *catalog.Catalog
	store   *preferences.Store
}

func newRootCmd(out io.Writer) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "menuctl",
		Short: "Manage Menu Roulette preferences and pick a meal",
		Long: `menuctl works directly on the BadgerDB directory used by the server.

Available commands:
  catalog    - List categories, moods and diets
  favorites  - List or toggle favorite categories
  blacklist  - List or toggle blacklisted categories
  history    - List, remove or clear history entries
  stats      - Rank categories by how often they were chosen
  pick       - Run the funnel headless and print the result`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{Level: flags.logLevel, Format: "console", Output: cmd.ErrOrStderr()})
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&flags.storage, "storage", "", "BadgerDB directory (default: STORAGE_PATH or config)")
	root.PersistentFlags().StringVar(&flags.catalog, "catalog", "", "catalog YAML file (default: CATALOG_PATH or embedded)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newCatalogCmd(&flags),
		newToggleListCmd(&flags, "favorites", "favorite", func(s *preferences.Store) []string { return s.Favorites() },
			func(s *preferences.Store) func(context.Context, string) (bool, error) { return s.ToggleFavorite }),
		newToggleListCmd(&flags, "blacklist", "blacklisted", func(s *preferences.Store) []string { return s.Blacklist() },
			func(s *preferences.Store) func(context.Context, string) (bool, error) { return s.ToggleBlacklist }),
		newHistoryCmd(&flags),
		newStatsCmd(&flags),
		newPickCmd(&flags),
	)
	return root
}

// withEnv opens catalog and storage, runs fn and closes storage again.
func withEnv(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, e *env) error) error {
	storagePath, catalogPath, err := resolvePaths(flags)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	persister, err := preferences.OpenBadger(storagePath, false)
	if err != nil {
		return fmt.Errorf("open storage %s: %w", storagePath, err)
	}
	defer func() {
		if cerr := persister.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Error closing storage")
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := preferences.Open(ctx, persister, preferences.Options{})
	if err != nil {
		return err
	}
	return fn(ctx, &env{out: cmd.OutOrStdout(), catalog: cat, store: store})
}

func resolvePaths(flags *globalFlags) (storagePath, catalogPath string, err error) {
	storagePath, catalogPath = flags.storage, flags.catalog
	if storagePath != "" && catalogPath != "" {
		return storagePath, catalogPath, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", "", fmt.Errorf("load configuration: %w", err)
	}
	if storagePath == "" {
		storagePath = cfg.Storage.Path
	}
	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}
	return storagePath, catalogPath, nil
}
