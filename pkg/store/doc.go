/*
Package store implements the storage engine: a concurrency-safe
in-memory table/key/document map backed by a write-ahead operation log.

The store package is the heart of sharknado. Every session shares one
Engine; every mutation is appended to the operation log and synced
before the in-memory state is allowed to change, so the state after a
restart is exactly the state the log describes.

# Architecture

The engine layers an in-memory map over the append-only log:

	┌──────────────────── STORAGE ENGINE ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │               Engine                        │          │
	│  │  - tables: map[table]map[key]document       │          │
	│  │  - mu: sync.RWMutex (one per database)      │          │
	│  │  - wal: append-only operation log           │          │
	│  │  - broker: optional event publisher         │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Mutation Path (Set/Update/Delete) │          │
	│  │                                              │          │
	│  │  1. validate table + key                     │          │
	│  │  2. acquire exclusive lock                   │          │
	│  │  3. append record to log (write + fsync)     │          │
	│  │  4. apply record to in-memory map            │          │
	│  │  5. publish event, release lock              │          │
	│  │                                              │          │
	│  │  Log append failure aborts before step 4:    │          │
	│  │  memory is never ahead of the log            │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Read Path (Get/Query)             │          │
	│  │                                              │          │
	│  │  - shared lock (concurrent readers)          │          │
	│  │  - Get: two map lookups                      │          │
	│  │  - Query: full scan of one table,            │          │
	│  │    conjunction of conditions per document    │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Startup (Open)                    │          │
	│  │                                              │          │
	│  │  replay <name>.log from the beginning        │          │
	│  │       ↓ apply each record in order           │          │
	│  │  open the log for appending                  │          │
	│  │       ↓                                      │          │
	│  │  Engine ready                                │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Engine:
  - Owns the table map, the log handle and the lock
  - Constructed once per database via Open
  - Injected into sessions as a shared handle (no globals)

Entry:
  - One query result: Key plus the matching document
  - Result order is unspecified (map iteration order)

Operations:

	Op       Success                              Errors
	──────   ──────────────────────────────────   ─────────────────────
	Set      insert or overwrite (t, k)           invalid name, log I/O
	Get      return the document                  not found
	Update   replace existing (t, k)              not found, log I/O
	Delete   remove (t, k); absent key is a       invalid name, log I/O
	         no-op but is still logged
	Query    entries matching all conditions      table not found
	Tables   names of all tables                  -
	Len      document count of one table          -

Tables are created implicitly by the first Set; there is no explicit
CREATE TABLE operation.

# Consistency Model

Write-ahead discipline:
  - The exclusive lock covers both the log append and the in-memory
    apply, so the log is a linearization of all mutations
  - A mutation is visible to readers only after it is durable
  - A failed append leaves memory untouched and surfaces the error

Recovery invariant:
  - The in-memory store after Open equals replaying the log from an
    empty store
  - DELETE of an absent key appends a record but changes nothing;
    replaying it is equally a no-op, keeping recovery deterministic

Sentinel errors:
  - ErrNotFound: table or key missing for Get/Update/Query
  - ErrInvalidTable: identifier not letters/digits/underscore
  - ErrInvalidKey: empty key or key containing whitespace

# Usage

Opening a database:

	import "github.com/sharknado-db/sharknado/pkg/store"

	engine, err := store.Open("/var/lib/sharknado", "inventory", broker)
	if err != nil {
		return err
	}
	defer engine.Close()

Basic operations:

	doc, _ := document.Decode(`{"name":"John","age":30}`)
	if err := engine.Set("users", "john", doc); err != nil {
		return err
	}

	got, err := engine.Get("users", "john")
	if errors.Is(err, store.ErrNotFound) {
		// key or table absent
	}

Querying:

	conds, _ := query.Parse(`age >= 18 name contains "John"`)
	entries, err := engine.Query("users", conds)
	for _, entry := range entries {
		fmt.Println(entry.Key, entry.Doc)
	}

# Concurrency

Locking:
  - Mutations take the write lock for the append + apply pair
  - Get and Query take the read lock; any number run concurrently
  - The lock is never held across socket I/O; sessions acquire it
    only inside engine calls

Blocking profile:
  - The only blocking operation under the write lock is the log
    append (an OS write plus fsync)
  - Query holds the read lock for the duration of the table scan

# Integration Points

This package integrates with:

  - pkg/wal: appends and replays operation records
  - pkg/types: Record/Op values and identifier validation
  - pkg/query: condition evaluation during Query scans
  - pkg/events: publishes document.set/updated/deleted
  - pkg/metrics: mutation counters and append-failure counter
  - pkg/server: sessions dispatch data commands into the engine
  - pkg/metrics HTTP endpoint: Tables/Len feed the health summary

# Performance Characteristics

Mutations:
  - Dominated by the fsync in the log append (~0.1-10ms depending on
    the device); map apply is O(1)
  - All mutations across all connections serialize on the write lock

Reads:
  - Get: O(1), microseconds
  - Query: O(n) over the table, times the condition count
  - No indexes; every query is a scan

Memory:
  - Whole dataset resident: roughly the decoded JSON trees plus map
    overhead per document
  - The log is never read after startup and never truncated

# Troubleshooting

Mutation returns an IOFailure:
  - Symptom: Set/Update/Delete fails, state unchanged
  - Cause: log append or fsync failed (disk full, permissions)
  - Check: free space and write permission on the data directory
  - The engine stays usable; reads keep working

State missing after restart:
  - Symptom: documents absent that were written before the crash
  - Check: server pointed at the same data directory and database
    name (the log file is <database>.log in the data dir)
  - Check: startup log line "database recovered from operation log"
    and its records count

Log grows without bound:
  - Expected: the log is append-only and records every mutation,
    including overwrites and no-op deletes
  - Mitigation: archive and restart from a fresh directory, or
    accept the growth; compaction is a deliberate non-feature

# Complete Example

	package main

	import (
		"fmt"

		"github.com/sharknado-db/sharknado/pkg/document"
		"github.com/sharknado-db/sharknado/pkg/log"
		"github.com/sharknado-db/sharknado/pkg/query"
		"github.com/sharknado-db/sharknado/pkg/store"
	)

	func main() {
		log.Init(log.Config{Level: log.InfoLevel})

		engine, err := store.Open(".", "example", nil)
		if err != nil {
			panic(err)
		}
		defer engine.Close()

		// Write two documents; the table appears on first Set
		john, _ := document.Decode(`{"name":"John","age":30}`)
		jane, _ := document.Decode(`{"name":"Jane","age":40}`)
		_ = engine.Set("users", "john", john)
		_ = engine.Set("users", "jane", jane)

		// Point read
		doc, _ := engine.Get("users", "john")
		line, _ := document.Encode(doc)
		fmt.Println(line)

		// Filtered scan
		conds, _ := query.Parse(`age > 35`)
		entries, _ := engine.Query("users", conds)
		for _, entry := range entries {
			fmt.Println(entry.Key) // jane
		}

		// Kill the process here and run it again: both documents
		// come back from example.log before the first Set
	}

# Use Cases

Session dispatch:
  - Every TCP session holds the same *Engine and calls it directly;
    the engine's locking is the only coordination between
    connections

Crash recovery:
  - Open is the recovery procedure; there is no separate repair
    tool. A torn final log line is skipped by replay and the engine
    comes up with everything before it.

Test fixtures:
  - Open against t.TempDir() gives each test an isolated database
    with zero setup; pass a nil broker to skip event plumbing

Inspection:
  - The log file is readable text; "tail -f example.log" is a poor
    man's change feed while debugging

# Best Practices

Do:
  - Inject the engine handle; construct it once in the entrypoint
  - Check errors.Is(err, store.ErrNotFound) rather than matching
    message text
  - Treat documents returned by Get/Query as read-only; Set a new
    value instead of mutating in place
  - Close the engine on shutdown so the log handle is released

Don't:
  - Open two engines on the same log file in one process (each
    assumes exclusive append ownership)
  - Hold references to query results across mutations and expect
    them to update; entries are snapshots
  - Build multi-key invariants on top of single-key operations;
    there are no transactions

# Limitations

  - Single process, single log file; no replication
  - No secondary indexes, sorting or aggregation; Query is a scan
  - No per-table locks: one writer at a time across the database
  - The whole dataset lives in memory

# See Also

  - pkg/wal for the record format and replay semantics
  - pkg/query for condition evaluation
  - pkg/server for how sessions drive the engine
*/
package store
