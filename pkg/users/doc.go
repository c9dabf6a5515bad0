/*
Package users manages the persistent user directory backing
authentication: a users.json file mapping usernames to credentials and
roles.

The directory is independent of the operation log. It is loaded at
startup, rewritten in full on every mutation, and can be hot-reloaded
when another process (the user admin CLI) edits the file.

# Architecture

	┌──────────────────── USER DIRECTORY ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │              Directory                      │          │
	│  │  - users: map[username]User                 │          │
	│  │  - mu: sync.RWMutex                         │          │
	│  │  - path: <dataDir>/users.json               │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Mutation Path                    │          │
	│  │                                              │          │
	│  │  Create/Update/Delete                        │          │
	│  │     ↓ mutate in-memory map                   │          │
	│  │  marshal whole directory                     │          │
	│  │     ↓ write users.json.tmp                   │          │
	│  │  rename over users.json (atomic)             │          │
	│  │                                              │          │
	│  │  save failure → in-memory change reverted    │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Reload Path                      │          │
	│  │                                              │          │
	│  │  fsnotify on the data directory              │          │
	│  │     ↓ users.json written/renamed             │          │
	│  │  Reload: re-read file, replace map           │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# File Format

users.json is one JSON object keyed by username:

	{
	  "admin": {
	    "password": "$2a$10$N9qo8uLOickgx2ZMRZoMye...",
	    "role": "admin"
	  },
	  "jane": {
	    "password": "$2a$10$x1GhDCm7umBQ3Wl3wYUVz...",
	    "role": "user"
	  }
	}

A missing file is an empty directory. The file is shared by every
database served from the same data directory.

# Operations

	Op            Success                      Errors
	───────────   ──────────────────────────   ─────────────────────
	Create        insert + persist             ErrConflict (exists),
	                                           invalid role
	Update        change password or role      ErrNotFound,
	                                           ErrBadField
	Delete        remove + persist             ErrNotFound
	Authenticate  returns the user's role      ErrInvalidCredentials
	List          snapshot sorted by name      -
	Reload        replace state from disk      read/parse error
	Watch         reload on file change        watcher setup error

Update accepts exactly two field names, "password" and "role";
anything else is ErrBadField. Role values are "admin" or "user".
Authorization is the caller's concern: List is admin-only at the CLI
surface, and the TCP protocol exposes no user verbs at all.

# Password Storage

Passwords are hashed with bcrypt before they touch disk; Create and
Update("password", ...) never persist cleartext.

Authenticate inspects the stored value:
  - A "$2..." prefix is verified as a bcrypt hash
  - Anything else is treated as a legacy cleartext password and
    compared in constant time

The cleartext fallback exists so directories written by older
deployments keep authenticating; the entry upgrades to a hash the
next time its password is updated. The wire protocol is unchanged
either way: LOGIN carries the cleartext password and the comparison
happens server-side.

# Hot Reload

Watch(ctx) blocks until the context is cancelled, reloading the
directory whenever users.json changes on disk:

  - The fsnotify watch is on the parent directory, not the file,
    because saves land via rename and a file watch would detach
  - Only events for users.json trigger a reload; other files in the
    data directory (the operation log) are ignored
  - A reload failure is logged and the previous state is kept

This lets "sharknado user create ..." take effect on a running
server without a restart: the CLI writes the file, the watcher picks
it up, the next LOGIN sees the new account.

# Usage

	import "github.com/sharknado-db/sharknado/pkg/users"

	directory, err := users.Open(dataDir, broker)
	if err != nil {
		return err
	}

	// server startup
	go directory.Watch(ctx)

	// LOGIN handling
	role, err := directory.Authenticate("admin", "admin123")
	if errors.Is(err, users.ErrInvalidCredentials) {
		// reject; do not distinguish unknown user from bad password
	}

	// admin CLI
	err = directory.Create("jane", "secret", types.RoleUser)
	err = directory.Update("jane", "role", "admin")
	err = directory.Delete("jane")

# Integration Points

This package integrates with:

  - pkg/types: User and Role definitions
  - pkg/server: Authenticate backs the LOGIN command
  - cmd/sharknado: user create/update/delete/list subcommands
  - pkg/events: user.created/updated/deleted notifications
  - pkg/log: reload and watcher warnings

# Security Notes

  - Authenticate returns the same ErrInvalidCredentials for unknown
    users and wrong passwords, so the wire leaks no account
    existence information
  - The file is written 0600; it contains hashes, but legacy
    entries may be cleartext until rotated
  - bcrypt cost is the library default; raising it only affects
    newly written hashes

# Troubleshooting

New account not accepted by a running server:
  - Check the watcher is running (a "user directory reloaded" log
    line follows each CLI edit)
  - Editors that write via copy+delete can confuse rename
    detection; re-save or restart the server

Authenticate slow under load:
  - bcrypt verification is intentionally expensive (tens of ms);
    failed-login storms are rate-limited by the hash cost itself

# Complete Example

	package main

	import (
		"context"
		"fmt"

		"github.com/sharknado-db/sharknado/pkg/log"
		"github.com/sharknado-db/sharknado/pkg/types"
		"github.com/sharknado-db/sharknado/pkg/users"
	)

	func main() {
		log.Init(log.Config{Level: log.InfoLevel})

		directory, err := users.Open(".", nil)
		if err != nil {
			panic(err)
		}

		// Bootstrap an admin account on first run
		if len(directory.List()) == 0 {
			if err := directory.Create(
				"admin", "admin123", types.RoleAdmin); err != nil {
				panic(err)
			}
			fmt.Println("created initial admin account")
		}

		// Follow external edits for the life of the process
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go directory.Watch(ctx)

		role, err := directory.Authenticate("admin", "admin123")
		fmt.Println(role, err) // admin <nil>
	}

# Failure Atomicity

Every mutation follows the same shape:

 1. Mutate the in-memory map
 2. Marshal the whole directory
 3. Write to users.json.tmp, rename over users.json
 4. On any save error, restore the previous in-memory entry

The rename makes the on-disk file transition atomically between
complete states; a crash during save leaves either the old file or
the new one, never a torn mix. The in-memory rollback keeps a failed
save from leaving the running server ahead of disk.

# Best Practices

Do:
  - Bootstrap accounts with the user CLI (or Create) before
    starting the server; an empty directory rejects every LOGIN
  - Run Watch under the server's root context so it stops with the
    process
  - Rotate legacy cleartext entries by updating their passwords

Don't:
  - Edit users.json by hand while relying on specific bcrypt
    prefixes; a typo silently downgrades an entry to "cleartext"
  - Share one data directory between servers expecting isolated
    user sets; the file is per-directory, not per-database
  - Treat ErrConflict from Create as fatal in provisioning scripts;
    it usually means the account already exists and idempotent
    setups can continue

# See Also

  - pkg/server for where authentication gates commands
  - cmd/sharknado for the admin surface that edits this file
*/
package users
