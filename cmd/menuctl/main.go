// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Command menuctl inspects and edits the preference store of a Menu Roulette
// installation and runs the funnel headless from the command line.
//
//	menuctl favorites toggle pizza
//	menuctl history
//	menuctl pick --yesterday korean --tags spicy --price low
//
// menuctl opens the same BadgerDB directory as the server. Badger allows one
// process per directory, so stop the server or point --storage elsewhere.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
