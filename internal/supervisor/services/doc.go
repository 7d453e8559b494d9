// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

/*
Package services adapts application components to suture.Service.

Every wrapper implements

	Serve(ctx context.Context) error

and fmt.Stringer so supervisor events name the service.

HTTPServerService runs *http.Server and shuts it down gracefully when the
context is canceled.

SessionSweeperService periodically evicts idle funnel sessions.
*/
package services
