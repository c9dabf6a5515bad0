/*
Package metrics defines the Prometheus instrumentation for the server
and an optional HTTP endpoint that exposes it alongside a health
check.

All collectors are package-level and registered in init(), so any
package can increment a counter without carrying a registry handle.
The HTTP server is opt-in: it runs only when a metrics listen address
is configured.

# Architecture

	┌──────────────────── METRICS ─────────────────────────────┐
	│                                                            │
	│   pkg/server      pkg/store        pkg/wal (via store)     │
	│     │ commands,     │ mutations,     │ replayed records,   │
	│     │ sessions,     │ append         │                     │
	│     │ auth fails    │ failures       │                     │
	│     └───────┬───────┴────────┬───────┘                     │
	│             ▼                ▼                             │
	│  ┌────────────────────────────────────────────┐          │
	│  │      default prometheus registry            │          │
	│  │      (registered in init())                 │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │      metrics.Server (optional HTTP)         │          │
	│  │                                              │          │
	│  │  GET /metrics  → promhttp exposition         │          │
	│  │  GET /healthz  → JSON liveness + store       │          │
	│  │                  summary (tables, documents) │          │
	│  │                                              │          │
	│  │  Collect loop: refreshes store gauges        │          │
	│  │  every interval from Tables()/Len()          │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Metric Catalog

Store state (gauges, refreshed by the Collect loop):

	sharknado_tables_total       number of tables
	sharknado_documents_total    documents across all tables

Mutations (counters, incremented by the engine):

	sharknado_mutations_total{op}            applied mutations by
	                                         SET/UPDATE/DELETE
	sharknado_log_records_replayed_total     records replayed at
	                                         startup
	sharknado_log_append_failures_total      failed log appends

Protocol (incremented per command by sessions):

	sharknado_commands_total{verb,status}    commands by verb and
	                                         ok/error outcome; parse
	                                         failures count under
	                                         verb="parse"
	sharknado_command_duration_seconds{verb} handling latency
	sharknado_auth_failures_total            rejected LOGINs

Sessions (maintained by the acceptor/session lifecycle):

	sharknado_sessions_active    currently open connections
	sharknado_sessions_total     connections accepted since start

# Endpoints

GET /metrics:
  - Standard Prometheus exposition via promhttp

GET /healthz:
  - 200 with a JSON body:

	{
	  "status": "healthy",
	  "database": "inventory",
	  "tables": 4,
	  "documents": 1523,
	  "timestamp": "2026-08-01T12:00:00Z"
	}

  - Liveness only: it reports the process is up and can read its
    store; it does not probe the TCP listener

/healthz is GET-only; other methods get 405. /metrics is the plain
promhttp handler and applies no method check of its own.

# Usage

Enabling the endpoint (serve command):

	sharknado serve inventory --metrics-listen :9090

Programmatic wiring:

	import "github.com/sharknado-db/sharknado/pkg/metrics"

	ms := metrics.NewServer(database, engine) // engine satisfies StoreStats
	go ms.Collect(ctx, 15*time.Second)
	go ms.Serve(ctx, ":9090")

Instrumenting code:

	metrics.CommandsTotal.WithLabelValues("SET", "ok").Inc()

	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.CommandDuration, "SET")

# Monitoring

Useful queries:

	rate(sharknado_commands_total{status="error"}[5m])
	  command error rate, by verb

	rate(sharknado_mutations_total[5m])
	  write throughput

	sharknado_sessions_active
	  connection count (alert on saturation)

	increase(sharknado_log_append_failures_total[10m]) > 0
	  disk trouble: mutations are being refused

	histogram_quantile(0.99,
	  rate(sharknado_command_duration_seconds_bucket[5m]))
	  p99 command latency (dominated by fsync for writes)

# Integration Points

This package integrates with:

  - pkg/server: command/session/auth instrumentation
  - pkg/store: mutation and log counters, StoreStats for /healthz
  - cmd/sharknado: wires the HTTP server from --metrics-listen or
    the config file
  - pkg/log: endpoint lifecycle messages

# Design Notes

  - Package-level collectors trade injectability for zero ceremony
    at call sites; the default registry also means the process
    exposes the standard Go and process collectors for free
  - StoreStats is a two-method view of the engine, so the HTTP
    server depends on an interface rather than on pkg/store,
    keeping the dependency arrow pointing one way
  - Store gauges are sampled on an interval instead of updated on
    every mutation; document counts tolerate a few seconds of lag
    and the hot path stays free of extra locking

# Complete Example

	package main

	import (
		"context"
		"time"

		"github.com/sharknado-db/sharknado/pkg/log"
		"github.com/sharknado-db/sharknado/pkg/metrics"
		"github.com/sharknado-db/sharknado/pkg/store"
	)

	func main() {
		log.Init(log.Config{Level: log.InfoLevel})

		engine, err := store.Open(".", "main", nil)
		if err != nil {
			panic(err)
		}
		defer engine.Close()

		ctx := context.Background()
		ms := metrics.NewServer("main", engine)
		go ms.Collect(ctx, 15*time.Second)

		// Blocks until ctx is cancelled; curl :9090/metrics or
		// :9090/healthz meanwhile
		if err := ms.Serve(ctx, ":9090"); err != nil {
			panic(err)
		}
	}

Scrape configuration:

	scrape_configs:
	  - job_name: sharknado
	    static_configs:
	      - targets: ["db-host:9090"]

# Alerting Suggestions

	Alert                    Expression
	──────────────────────   ──────────────────────────────────────
	Append failures          increase(
	                           sharknado_log_append_failures_total
	                         [10m]) > 0
	Error-rate spike         sum(rate(sharknado_commands_total
	                         {status="error"}[5m])) /
	                         sum(rate(
	                           sharknado_commands_total[5m])) > 0.05
	Login brute force        rate(
	                           sharknado_auth_failures_total[1m])
	                         > 10
	Connection saturation    sharknado_sessions_active > threshold

Append failures deserve a page: every one is a refused write and
almost always means disk trouble.

# Best Practices

Do:
  - Label command metrics with the canonical upper-case verb (the
    session layer already does)
  - Keep the /metrics port off the public interface; it needs no
    authentication
  - Let Collect own the store gauges; setting them elsewhere causes
    flapping between two writers

Don't:
  - Add high-cardinality labels (table names, keys, usernames) to
    counters; verbs and statuses are bounded, tables are not
  - Block in StoreStats implementations; Collect and /healthz call
    them on request paths
  - Reuse metric names with different label sets; the registry
    panics at init

# See Also

  - pkg/server for where command metrics are recorded
  - pkg/store for the mutation counters' source of truth
*/
package metrics
