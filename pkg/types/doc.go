/*
Package types defines the shared value types used throughout
sharknado.

This package is the dependency floor: user accounts and roles, the
operation-log record model, and the validation rules for table
identifiers and document keys. The packages that handle accounts,
log records or identifiers (wal, store, users, server and the
command) import types; types imports only the standard library.

# Architecture

	┌──────────────────── SHARED TYPES ────────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Accounts                         │          │
	│  │  User{Username, Password, Role}             │          │
	│  │  Role: "admin" | "user"                     │          │
	│  └────────────────────────────────────────────┘           │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Operation Log                    │          │
	│  │  Op: SET | UPDATE | DELETE                  │          │
	│  │  Record{Op, Table, Key, Doc}                │          │
	│  └────────────────────────────────────────────┘           │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Validation                       │          │
	│  │  ValidTableName, ValidKey                   │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Types

Accounts:
  - User: one registered account. Username is the map key in
    users.json and is excluded from the JSON body (json:"-");
    Password holds the stored credential (normally a bcrypt hash);
    Role gates admin-only surfaces.
  - Role: typed string constant, RoleAdmin or RoleUser, with a
    Valid() check for input taken from flags and update commands.

Operation log:
  - Op: the three mutation verbs as typed string constants whose
    values (SET, UPDATE, DELETE) are also their serialized spelling
    in the log file
  - Record: one log entry. Doc is the decoded JSON document for SET
    and UPDATE, nil for DELETE.

# Validation Rules

ValidTableName:
  - Non-empty
  - Letters, digits and underscore only (Unicode letters and digits
    accepted)
  - Rejects: "", "my-table", "a.b", "my table"

ValidKey:
  - Non-empty
  - No whitespace of any kind
  - Punctuation is fine: "user:1/profile" is a valid key

These rules are what keep the log's line format parseable: table and
key occupy single space-delimited fields in every record, so neither
may contain a space, and table names additionally stay within an
identifier alphabet.

# Usage

	import "github.com/sharknado-db/sharknado/pkg/types"

	if !types.ValidTableName(table) {
		return fmt.Errorf("invalid table name")
	}

	rec := types.Record{
		Op:    types.OpSet,
		Table: "users",
		Key:   "john",
		Doc:   doc,
	}

	role := types.Role(flagValue)
	if !role.Valid() {
		return fmt.Errorf("role must be admin or user")
	}

# Integration Points

This package integrates with:

  - pkg/wal: serializes and parses Record values
  - pkg/store: validates identifiers, builds Records for every
    mutation
  - pkg/users: User and Role for the directory file
  - pkg/server: Role carried as session identity after LOGIN
  - cmd/sharknado: Role parsing for the user subcommands

# Design Patterns

Typed string enums:

	type Role string
	const (
		RoleAdmin Role = "admin"
		RoleUser  Role = "user"
	)

The constant value doubles as the wire/file spelling, so there is no
separate marshalling step and invalid values are representable but
detectable (Valid()).

Plain data:
  - No methods beyond validation helpers; behavior lives in the
    packages that own the semantics
  - No constructors; zero values and struct literals are the API

# Thread Safety

All types are plain values. They are safe to read concurrently and
unsafe to mutate concurrently; the owning packages (store, users)
synchronize around them.

# Validation Examples

	input             ValidTableName   ValidKey
	───────────────   ──────────────   ────────
	"users"           true             true
	"audit_2024"      true             true
	"_"               true             true
	"my-table"        false            true
	"a.b"             false            true
	"user:1/profile"  false            true
	"my table"        false            false
	"a\tb"            false            false
	""                false            false

Table names are a strict subset of keys: anything that passes
ValidTableName also passes ValidKey, but not the reverse. Dots are
legal in keys yet excluded from table names so a "table.key" display
form stays unambiguous in logs and tooling.

# Serialization

User:
  - Marshals as {"password": "...", "role": "..."}; the username is
    the enclosing object key in users.json, so the field carries
    json:"-" to avoid duplicating it
  - Round-trips through encoding/json; pkg/users fills Username
    back in after unmarshalling

Record:
  - Not JSON-marshalled as a whole; pkg/wal renders it as a log
    line with only the Doc payload JSON-encoded
  - Op constants are the literal on-disk verbs, so adding a verb
    means choosing its permanent spelling here

Role:
  - Stored and transmitted as its string value; Valid() is the
    gate for values arriving from files and flags

# Extension Notes

Adding a fourth Op:
 1. Add the constant here (its value is the log spelling forever)
 2. Teach pkg/wal encodeRecord/decodeRecord the new line shape
 3. Teach Engine.apply its state effect
 4. Old binaries replaying a new log skip the unknown verb with a
    warning, which is the built-in forward-compatibility story

Adding a role:
 1. Add the constant and include it in Valid()
 2. Existing users.json files remain valid; unknown roles in old
    files fail Valid() where inputs are checked, not at load time

# See Also

  - pkg/wal for how Records become log lines
  - pkg/users for how User maps into users.json
*/
package types
