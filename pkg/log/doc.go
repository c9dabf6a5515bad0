/*
Package log provides structured logging for sharknado built on
zerolog.

Every component logs through one globally configured zerolog.Logger,
initialized exactly once at process start. Helpers derive child
loggers that stamp the fields the rest of the system keys on:
component, session_id and database.

# Architecture

	┌──────────────────── LOGGING ─────────────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │             Init(Config)                    │          │
	│  │  - Level: debug | info | warn | error       │          │
	│  │  - JSONOutput: machine vs console format    │          │
	│  │  - Output: io.Writer (default os.Stdout)    │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           global Logger                     │          │
	│  │  zerolog.Logger with timestamps             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │ child loggers                        │
	│        ┌────────────┼──────────────┐                      │
	│        ▼            ▼              ▼                      │
	│  WithComponent  WithSessionID  WithDatabase                │
	│  ("wal",        (per TCP       (per served                │
	│   "server",      connection)    database)                 │
	│   "users", ...)                                            │
	└────────────────────────────────────────────────────────┘

# Configuration

Levels:
  - debug: per-command and per-event detail (session traffic, event
    mirror, replay skips)
  - info: lifecycle (startup, recovery summary, logins, shutdown)
  - warn: recoverable oddities (malformed log lines, reload
    failures, socket write errors)
  - error: failures that need attention (accept errors, metrics
    server failures)

ParseLevel normalizes user input from flags and config files;
unknown strings fall back to info rather than erroring, so a typo in
--log-level never prevents startup.

Output formats:
  - Console (default): human-readable, RFC3339 timestamps, suited
    to a terminal
  - JSON (--log-json): one object per line for log shippers

# Field Conventions

	Field        Source                 Meaning
	──────────   ────────────────────   ──────────────────────────
	component    WithComponent          subsystem name ("wal",
	                                    "server", "users", ...)
	session_id   WithSessionID          uuid of one TCP connection
	database     WithDatabase           database name being served
	event        serve's event sink     broker event type
	user         session login/logout   authenticated username

Child loggers are cheap; create them where the field value becomes
known (one per session, one per replay) instead of threading loggers
through call stacks.

# Usage

Initialization (done once, in the command entrypoint):

	import "github.com/sharknado-db/sharknado/pkg/log"

	log.Init(log.Config{
		Level:      log.ParseLevel("debug"),
		JSONOutput: false,
	})

Component logging:

	logger := log.WithComponent("wal")
	logger.Warn().
		Int("line", lineNo).
		Err(err).
		Msg("skipping malformed log record")

Per-session logging:

	logger := log.WithSessionID(sessionID)
	logger.Info().Str("user", username).Msg("login")

Tests silence output by pointing the writer at io.Discard:

	log.Init(log.Config{Level: log.ErrorLevel, Output: io.Discard})

# Integration Points

Every package logs through this one:

  - pkg/wal: replay warnings
  - pkg/store: recovery summary
  - pkg/server: session lifecycle, command failures
  - pkg/users: reload and watcher diagnostics
  - pkg/metrics: HTTP endpoint lifecycle
  - cmd/sharknado: startup, shutdown, event mirror

# Design Notes

  - The global Logger mirrors zerolog's own usage model; handles are
    not injected because logging is genuinely process-wide
    configuration, unlike the engine or directory handles
  - Level filtering happens in zerolog via the global level, so
    disabled debug logging costs a single atomic load per call site
  - There is no file rotation or shipping here; run under a
    supervisor and let it own stdout

# Complete Example

	package main

	import (
		"github.com/sharknado-db/sharknado/pkg/log"
	)

	func main() {
		log.Init(log.Config{
			Level:      log.ParseLevel("debug"),
			JSONOutput: true,
		})

		logger := log.WithComponent("demo")
		logger.Info().
			Str("database", "main").
			Int("records", 42).
			Msg("recovery complete")

		sessionLog := log.WithSessionID("f4b2...")
		sessionLog.Debug().Str("verb", "SET").Msg("command handled")
	}

JSON output, one object per line:

	{"level":"info","component":"demo","database":"main",
	 "records":42,"time":"2026-08-01T12:00:00Z",
	 "message":"recovery complete"}

Console output of the same event:

	2026-08-01T12:00:00Z INF recovery complete component=demo
	    database=main records=42

# Troubleshooting

No output at all:
  - Init not called (the zero-value Logger discards events); the
    cobra entrypoint calls it in OnInitialize before any command
    runs

Debug lines missing:
  - The global level filters them; run with --log-level debug
  - ParseLevel silently maps unknown strings to info; check the
    flag value for typos

Interleaved/garbled lines under load:
  - Multiple processes sharing one stdout; give each its own pipe.
    Within one process zerolog writes each event atomically.

# Best Practices

Do:
  - Derive a child logger when a key field becomes known and reuse
    it (per session, per database)
  - Put variable data in fields, not in the message string, so JSON
    consumers can filter
  - Use Err(err) for errors; it standardizes the field name

Don't:
  - Call Init more than once outside tests; late reconfiguration
    surprises goroutines holding child loggers
  - Log at error level for conditions the code handles (a malformed
    log line that replay skips is a warning)
  - Log secrets; LOGIN handling never logs passwords, keep it that
    way

# See Also

  - cmd/sharknado for the --log-level / --log-json flags
  - pkg/metrics for numeric observability to complement the logs
*/
package log
