// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for Cinematch using suture v4.

# Overview

Long-running services are grouped into two layers:

	RootSupervisor ("cinematch")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogWatchService (if catalog.watch)
	│   └── RefreshService (if catalog.refresh_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with backoff. A failing watcher does not take the
HTTP server down with it.

Supervisor events are logged through sutureslog; pass a slog logger backed by
zerolog (logging.NewSlogLogger) to keep a single log stream.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger(logging.Logger()),
	    supervisor.DefaultTreeConfig(),
	)
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogWatchService(loader, watchCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See the services subpackage for the service implementations.
*/
package supervisor
