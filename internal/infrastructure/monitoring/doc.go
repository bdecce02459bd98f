/*
Package monitoring provides metrics collection for workspace operations.

# Overview

Metrics live on a private Prometheus registry, so several workspaces (or
tests) in one process never collide on registration.

# Features

- File operation counts and latency by op and outcome kind
- Sandbox escape and duplicate-operation rejections
- Chunks handed to the memory sink
- Committed line edits by action

# Usage

	metrics := monitoring.NewMetrics()
	store := filesystem.New(guard, log, filesystem.WithMetrics(metrics))

	// Dump for node_exporter's textfile collector
	metrics.WriteToTextfile("/var/lib/node_exporter/workspace.prom")
*/
package monitoring
