// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package supervisor provides process supervision for Curatus using suture v4.

It implements a small supervisor tree that manages the lifecycle of the
long-running parts of the service, with Erlang/OTP-style automatic restart,
failure isolation, and graceful shutdown.

# Overview

The tree has two layers:

	Root ("curatus")
	├── data-layer
	│   └── session.GCService (BadgerDB value-log GC)
	└── api-layer
	    └── HTTPServerService

A crash in the GC loop restarts only that loop; the HTTP server keeps
serving against the open store. Likewise an HTTP server crash never takes
down store maintenance.

# Usage

Basic setup in main.go:

	slogger := logging.NewSlogLogger()
	tree, err := supervisor.NewTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(session.NewGCService(store, logger))
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))

	// Blocks until ctx is canceled.
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Failure Handling

Suture counts failures per supervisor with exponential decay. A service
that crashes repeatedly within FailureDecay seconds pushes the counter
past FailureThreshold, and further restarts wait FailureBackoff. The
defaults in DefaultTreeConfig match suture's own.

Service return behavior:
  - nil: stopped cleanly, not restarted
  - error: crashed, restarted with backoff
  - context canceled: shutdown requested, return promptly

# What Is Not Supervised

The recommendation engine is not supervised. The model is an immutable
in-memory structure loaded once at startup; there is no loop to restart.
A failed load marks the engine degraded and the health endpoints report
it, which is a configuration problem rather than a transient fault.

# Debugging Shutdown Issues

If services do not stop within the timeout:

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("service did not stop: %v", svc)
	}
*/
package supervisor
