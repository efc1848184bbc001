// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for Cinematch components.

Each wrapper implements the suture v4 Service interface

	type Service interface {
	    Serve(ctx context.Context) error
	}

and returns when its context is canceled, or with an error that lets the
supervisor decide on a restart.

# Available Services

HTTP Server (HTTPServerService):
  - Runs *http.Server.ListenAndServe
  - Drains connections with Shutdown on cancellation

Catalog Watcher (CatalogWatchService):
  - fsnotify on the dataset's directory
  - Debounces bursts of writes, then calls Reload
  - Reload failures are logged; the previous catalog stays in service

Periodic Refresh (RefreshService):
  - Calls Reload on a ticker
  - A zero interval disables it (suture.ErrDoNotRestart)
*/
package services
