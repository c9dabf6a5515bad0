/*
Package server implements the TCP acceptor and the per-connection
session state machine.

The server binds one TCP listener, runs one goroutine per connection,
and gives every session shared handles to the storage engine and the
user directory. Sessions own all protocol state; the acceptor holds no
per-connection data.

# Architecture

	┌──────────────────── TCP SERVER ──────────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │               Server                        │          │
	│  │  - net.Listener on :8080 (configurable)     │          │
	│  │  - Start(ctx) / Stop lifecycle              │          │
	│  │  - WaitGroup over live sessions             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │ accept loop                         │
	│        ┌────────────┼────────────┐                        │
	│        ▼            ▼            ▼                        │
	│  ┌──────────┐ ┌──────────┐ ┌──────────┐                  │
	│  │ session  │ │ session  │ │ session  │  one goroutine    │
	│  │ (uuid)   │ │ (uuid)   │ │ (uuid)   │  per connection   │
	│  └────┬─────┘ └────┬─────┘ └────┬─────┘                  │
	│       │            │            │                         │
	│       ▼            ▼            ▼                         │
	│  ┌────────────────────────────────────────────┐          │
	│  │    shared handles (injected, no globals)    │          │
	│  │    store.Engine   users.Directory           │          │
	│  │    events.Broker  metrics counters          │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Session State Machine

Two states, reject-by-default before authentication:

	            LOGIN ok
	  UNAUTH ──────────────▶ AUTH ──┐
	    ▲  │                  │  │  │ LOGIN ok (re-auth,
	    │  │ LOGIN fail       │  │  │ replaces identity)
	    │  └──▶ UNAUTH        │  ◀──┘
	    │                     │
	    └───── LOGOUT ────────┘

	  any state ── EOF / write failure ──▶ closed

Transition table:

	State    Command     Next     Response
	──────   ─────────   ──────   ────────────────────────────
	UNAUTH   LOGIN ok    AUTH     OK: Logged in as <user>
	UNAUTH   LOGIN bad   UNAUTH   ERROR: Invalid credentials
	UNAUTH   anything    UNAUTH   ERROR: Authentication required
	AUTH     LOGOUT      UNAUTH   OK: Logged out
	AUTH     data op     AUTH     result or error
	AUTH     LOGIN ok    AUTH     OK: Logged in as <user>
	AUTH     LOGIN bad   AUTH     ERROR: Invalid credentials
	                              (identity unchanged)

Command errors never drop the connection; the session answers with an
ERROR line and stays in its current state. Only EOF, a read error or
a failed socket write end a session.

# Request Cycle

For every line read from the socket:
 1. Parse into a Command (pkg/protocol); parse failures short-
    circuit to an ERROR response (Authentication required before
    LOGIN, the parse error name afterwards)
 2. Dispatch through the state machine
 3. Data commands call into the shared engine; the engine lock is
    acquired inside those calls only, never across socket I/O, so a
    slow client cannot stall other connections
 4. Exactly one response line is written back
 5. Command counters and duration histograms are recorded

Error taxonomy on the wire (first token after "ERROR: "):

	Authentication required    any line but LOGIN before login
	Invalid credentials        LOGIN failed
	NotFound                   table or key missing
	MalformedQuery             QUERY grammar error
	BadJSON                    SET/UPDATE payload invalid
	BadArguments               wrong argument count / bad name
	UnknownCommand             unrecognized verb
	IOFailure                  log append or other I/O error

# Usage

Running a server:

	import "github.com/sharknado-db/sharknado/pkg/server"

	srv := server.NewServer(engine, directory, broker, &server.Config{
		ListenAddr: ":8080",
	})
	if err := srv.Start(ctx); err != nil {
		return err // bind failure
	}
	defer srv.Stop()

Start returns once the listener is bound; sessions run until the
context is cancelled or Stop is called. Stop closes the listener and
every open connection, then waits for in-flight sessions to finish
their current command loop.

Listening on an ephemeral port (tests):

	srv := server.NewServer(engine, directory, nil, &server.Config{
		ListenAddr: "127.0.0.1:0",
	})
	_ = srv.Start(context.Background())
	addr := srv.Addr().String() // actual host:port

# Concurrency

  - Each connection's commands are strictly sequential: read line,
    respond, read next. There is no pipelining.
  - Across connections, mutations serialize on the engine's write
    lock around the log append, which linearizes the mutation
    history; readers see a consistent snapshot at some point in that
    order.
  - A disconnect mid-command aborts only the reply. Mutations that
    already reached the log stay durable; nothing rolls back.
  - Session goroutines are tracked in a WaitGroup so Stop can drain
    them.

# Integration Points

This package integrates with:

  - pkg/protocol: request parsing and response framing
  - pkg/store: all data commands
  - pkg/users: LOGIN authentication
  - pkg/query: QUERY condition parsing
  - pkg/document: response payload encoding
  - pkg/events: session.opened/closed notifications
  - pkg/metrics: session gauges, command counters, durations
  - pkg/log: per-session child logger keyed by session_id

# Observability

Every session gets a uuid, logged on open/close and attached to all
its log lines. Metrics exposed per command verb and status make
error-rate dashboards one PromQL query; see pkg/metrics.

# Troubleshooting

Client hangs after sending a command:
  - Commands are newline-terminated; an unterminated line is still
    being buffered. Send \n.
  - Responses are exactly one line; read until \n, not until close.

"ERROR: Authentication required" for every command:
  - LOGIN first; authentication is per-connection state, not global

Bind failure on Start:
  - Address already in use or insufficient privilege for the port;
    the error wraps the listener failure verbatim

# Complete Example

	package main

	import (
		"context"
		"os/signal"
		"syscall"

		"github.com/sharknado-db/sharknado/pkg/events"
		"github.com/sharknado-db/sharknado/pkg/log"
		"github.com/sharknado-db/sharknado/pkg/server"
		"github.com/sharknado-db/sharknado/pkg/store"
		"github.com/sharknado-db/sharknado/pkg/users"
	)

	func main() {
		log.Init(log.Config{Level: log.InfoLevel})

		broker := events.NewBroker()
		broker.Start()
		defer broker.Stop()

		engine, err := store.Open("/var/lib/sharknado", "main", broker)
		if err != nil {
			panic(err)
		}
		defer engine.Close()

		directory, err := users.Open("/var/lib/sharknado", broker)
		if err != nil {
			panic(err)
		}

		ctx, stop := signal.NotifyContext(
			context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.NewServer(engine, directory, broker, nil)
		if err := srv.Start(ctx); err != nil {
			panic(err)
		}

		<-ctx.Done()
		_ = srv.Stop()
	}

A wire session against that server:

	$ nc localhost 8080
	GET users john
	ERROR: Authentication required
	LOGIN admin admin123
	OK: Logged in as admin
	SET users john {"name":"John","age":30}
	OK: Stored users/john
	GET users john
	RESULT: {"age":30,"name":"John"}
	LOGOUT
	OK: Logged out

# Performance Characteristics

Connections:
  - One goroutine and one 64KB (growable to 16MB) scan buffer per
    connection; thousands of mostly idle connections are cheap
  - Accept loop is single-threaded; connection churn, not count, is
    its limit

Commands:
  - Reads complete in microseconds plus network time
  - Writes serialize on the engine lock around an fsync; aggregate
    write throughput across all connections is 1/fsync-latency
  - A slow reader delays only itself: responses are written on the
    session's own goroutine

# Best Practices

Do:
  - Cancel the Start context (or call Stop) during shutdown so the
    WaitGroup drains sessions
  - Give tests "127.0.0.1:0" and read the bound address from Addr
  - Keep LOGIN first in client code; every other command is wasted
    bytes until then

Don't:
  - Send a second command before reading the first response;
    the protocol is strictly request/response
  - Treat an ERROR response as a broken connection; the session is
    still healthy
  - Expect the server to time out idle clients; it intentionally
    never does

# See Also

  - pkg/protocol for the exact wire grammar
  - pkg/store for mutation durability guarantees
  - pkg/client for the matching client side
*/
package server
