/*
Package config loads server configuration from an optional YAML file,
with command-line flags taking precedence over file values.

Configuration is deliberately small: where to listen, where the data
lives, which database to serve, and how to log. Everything has a
working default so a bare "sharknado" starts a server with no file and
no flags.

# Architecture

Precedence, lowest to highest:

	┌──────────────────── CONFIGURATION ───────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │  1. Built-in defaults (Default())           │          │
	│  │     listen :8080, data dir ".",             │          │
	│  │     database sharknado_default, log info    │          │
	│  └──────────────────┬─────────────────────────┘          │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │  2. YAML file (--config path)               │          │
	│  │     unset keys keep their defaults          │          │
	│  └──────────────────┬─────────────────────────┘          │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │  3. Flags and arguments                     │          │
	│  │     --listen, --metrics-listen, --data-dir, │          │
	│  │     positional database name                │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

The merge happens in cmd/sharknado; this package only knows defaults
and file parsing.

# File Format

	listen: ":8080"
	metrics_listen: ":9090"
	data_dir: /var/lib/sharknado
	database: inventory
	log:
	  level: debug
	  json: true

Fields:

	Key              Default             Meaning
	──────────────   ─────────────────   ─────────────────────────
	listen           ":8080"             TCP protocol address
	metrics_listen   "" (disabled)       /metrics + /healthz HTTP
	data_dir         "."                 holds <database>.log and
	                                     users.json
	database         sharknado_default   log file is <database>.log
	log.level        info                debug|info|warn|error
	log.json         false               JSON log output

Empty database or data_dir values in the file fall back to their
defaults rather than producing a server with no database name.

# Usage

	import "github.com/sharknado-db/sharknado/pkg/config"

	cfg := config.Default()

	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return err // unreadable or invalid YAML
		}
	}

	// flag overrides applied by the caller
	if listenFlag != "" {
		cfg.Listen = listenFlag
	}

Load errors distinguish a missing file (an error: if the operator
pointed at a config file, silently ignoring it would be worse than
failing) from absent optional configuration (just don't pass
--config).

# Integration Points

This package integrates with:

  - cmd/sharknado: loads the file, layers flags, passes the result
    to store/users/server/metrics construction
  - pkg/log: Log.Level feeds ParseLevel at init

# Design Notes

  - YAML over JSON for the file because comments matter in operator-
    edited configuration
  - No environment variable layer; the surface is small enough that
    flags cover scripting needs
  - The struct is plain data with yaml tags; validation beyond
    fallback defaults belongs to the components consuming the
    values (a bad listen address fails at bind with a clear error)

# Complete Example

A production-ish setup:

	# /etc/sharknado/config.yaml
	listen: "0.0.0.0:8080"
	metrics_listen: "127.0.0.1:9090"
	data_dir: /var/lib/sharknado
	database: inventory
	log:
	  level: info
	  json: true

	$ sharknado serve --config /etc/sharknado/config.yaml

Overriding one value for a staging run without editing the file:

	$ sharknado serve staging_db \
	    --config /etc/sharknado/config.yaml \
	    --listen :8081

The positional database name and --listen win over the file; every
other value still comes from it.

Programmatic use:

	cfg, err := config.Load("/etc/sharknado/config.yaml")
	if err != nil {
		return err
	}
	engine, err := store.Open(cfg.DataDir, cfg.Database, broker)

# Troubleshooting

Server ignores the config file:
  - --config was not passed; there is no implicit search path, by
    design (no surprises from a stray ./config.yaml)

"failed to parse config":
  - YAML syntax error; the wrapped error carries the yaml library's
    line information

Changed the file, nothing happened:
  - Configuration is read once at startup; restart the server.
    Only users.json hot-reloads (see pkg/users).

# Best Practices

Do:
  - Keep one file per environment and point --config at it
  - Quote listen addresses (":8080") so YAML does not read them as
    maps
  - Bind metrics_listen to localhost unless the scrape path is
    trusted

Don't:
  - Put credentials in the file; it holds no secrets today and
    should stay that way (accounts live in users.json)
  - Rely on relative data_dir paths under process supervisors with
    unexpected working directories; use absolute paths

# See Also

  - cmd/sharknado for the flag set and merge order
  - pkg/users for the one file that does hot-reload
*/
package config
