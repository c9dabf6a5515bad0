/*
Package events provides an in-process publish/subscribe broker for
store activity.

The broker decouples the components that cause things to happen (the
storage engine, sessions, the user directory) from the components that
want to know about them (the debug event log, future audit sinks). Delivery is best-effort: a subscriber that falls behind drops
events rather than stalling publishers.

# Architecture

	┌──────────────────── EVENT BROKER ────────────────────────┐
	│                                                            │
	│   Engine        Session         Directory                  │
	│     │ document.*   │ session.*     │ user.*                │
	│     └──────┬───────┴───────┬───────┘                       │
	│            ▼               ▼                               │
	│  ┌────────────────────────────────────────────┐          │
	│  │        eventCh (buffered, 100)              │          │
	│  │              ↓                               │          │
	│  │        broadcast loop (one goroutine)        │          │
	│  │              ↓ per subscriber                │          │
	│  │        optional type filter                  │          │
	│  │              ↓ non-blocking send             │          │
	│  │        subscriber channel (buffered, 50)     │          │
	│  │              ↓ full? drop the event          │          │
	│  └────────────────────────────────────────────┘           │
	│            │               │                               │
	│            ▼               ▼                               │
	│      debug log sink   test assertions /                    │
	│      (cmd/sharknado)  future audit sinks                   │
	└────────────────────────────────────────────────────────┘

# Event Catalog

Document events (published by pkg/store, carry Table and Key):

	document.set       a SET was applied
	document.updated   an UPDATE was applied
	document.deleted   a DELETE was applied (including no-ops on
	                   absent keys; the log record exists either way)

Session events (published by pkg/server, session_id in Metadata):

	session.opened     a TCP connection was accepted
	session.closed     the connection ended

User events (published by pkg/users, username in Metadata):

	user.created
	user.updated
	user.deleted

Events carry no document payloads. Subscribers that need the data
read it through the engine; the broker only signals that something
changed.

# Core Components

Broker:
  - Owns the subscriber set, the per-subscriber type filters and the
    broadcast goroutine
  - Start launches the loop, Stop shuts it down; Publish after Stop
    is a no-op rather than a panic

Event:
  - Type, Timestamp (stamped at publish if zero), Table, Key and a
    free-form Metadata map

Subscriber:
  - A receive channel created by Subscribe (everything) or
    SubscribeTypes (a fixed allowlist)
  - Closed by Unsubscribe; always unsubscribe to avoid leaking the
    channel and its filter entry

# Delivery Semantics

  - Publish never blocks the caller beyond the buffered send into
    the broker's own channel
  - The broadcast loop sends to each subscriber without waiting; a
    full subscriber buffer means that subscriber misses the event
  - No replay, no persistence, no ordering guarantees across
    subscribers (within one subscriber, events arrive in publish
    order as long as its buffer never overflows)
  - Because delivery is lossy by design, nothing correctness-
    critical may depend on an event arriving; the operation log,
    not the broker, is the durable record

# Usage

Wiring at startup:

	import "github.com/sharknado-db/sharknado/pkg/events"

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	engine, _ := store.Open(dataDir, database, broker)

Consuming everything:

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	go func() {
		for event := range sub {
			logger.Debug().
				Str("event", string(event.Type)).
				Str("table", event.Table).
				Str("key", event.Key).
				Msg("event")
		}
	}()

Consuming a subset:

	sub := broker.SubscribeTypes(
		events.EventDocumentDeleted,
		events.EventUserDeleted,
	)
	defer broker.Unsubscribe(sub)

	for event := range sub {
		audit(event)
	}

# Integration Points

This package integrates with:

  - pkg/store: publishes document mutations after they are durable
  - pkg/server: publishes session lifecycle
  - pkg/users: publishes directory mutations
  - cmd/sharknado: the serve command subscribes and mirrors events
    into the debug log

Publishers treat the broker as optional: a nil broker disables
publishing, which tests use to run the engine standalone.

# Design Notes

  - Filters are evaluated in the broadcast loop, not at publish,
    so publishers stay oblivious to who is listening
  - Buffers (100 on the broker, 50 per subscriber) absorb bursts of
    a few hundred mutations; sustained overload drops events at the
    slowest subscriber only
  - The broker is in-process only. An external feed would be a new
    subscriber that forwards events, not a change to the broker.

# Troubleshooting

Subscriber sees nothing:
  - Broker not started (Start launches the loop; Publish without it
    only fills the internal buffer)
  - Type filter excludes the events being published

Missing occasional events:
  - Subscriber buffer overflow; drain faster or narrow the filter
    with SubscribeTypes

Goroutine leak in tests:
  - An un-received subscriber keeps its channel alive; always defer
    Unsubscribe

# Performance Characteristics

Publish:
  - A buffered channel send; sub-microsecond and independent of
    subscriber count
  - The engine publishes while holding its write lock, so this cost
    sits on the mutation path; it is deliberately tiny

Broadcast:
  - One goroutine walks the subscriber set per event; linear in
    subscriber count, each delivery a non-blocking channel send
  - With the handful of in-process subscribers this system runs,
    broadcast cost is noise next to the fsync every mutation pays

Memory:
  - Broker: the two channels plus the subscriber map
  - Per subscriber: a 50-slot channel and an optional filter map
  - Events are small structs; no document payloads are copied

# Monitoring

The broker itself is not instrumented; its observable effects are:

  - The debug event mirror in the serve command (every event at
    debug level)
  - sharknado_mutations_total moving while document.* events flow,
    so a silent mirror plus moving counters points at a subscriber
    problem rather than a publisher problem
  - SubscriberCount for leak hunting in tests

# Best Practices

Do:
  - Subscribe before the activity you want to observe; there is no
    replay
  - Use SubscribeTypes when you only want a few event kinds; the
    filter runs in the broker, not in your goroutine
  - Drain your channel promptly, or accept drops

Don't:
  - Block inside the receive loop on I/O slower than the publish
    rate
  - Use events to drive correctness (cache invalidation that must
    not miss, replication); they are lossy notifications
  - Publish from new call sites while holding locks the subscriber
    might need; keep publishers shallow

# See Also

  - pkg/store for what each document event means
  - cmd/sharknado for the built-in debug log sink
*/
package events
