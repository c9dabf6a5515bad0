/*
Package protocol defines the line-oriented wire protocol: parsing of
request lines into tagged commands and framing of single-line
responses.

The protocol is plain UTF-8 text over TCP. Each request is one line;
each response is one line. The parser is the single place where raw
client input becomes structured data, so everything downstream works
with a validated Command.

# Architecture

	┌──────────────────── WIRE PROTOCOL ───────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │              Request Line                   │          │
	│  │                                              │          │
	│  │  "SET users john {\"age\":30}\n"             │          │
	│  │        ↓ strip CR/LF, split verb             │          │
	│  │  verb: SET (case-insensitive)                │          │
	│  │        ↓ per-verb argument rules             │          │
	│  │  Command{Verb, Table, Key, Doc}              │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Response Line                  │          │
	│  │                                              │          │
	│  │  OK: <message>\n                             │          │
	│  │  RESULT: <single-line JSON>\n                │          │
	│  │  ERROR: <message>\n                          │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Command Catalog

	LOGIN <user> <pass>              authenticate the session
	LOGOUT                           drop authentication
	SET <table> <key> <json...>      insert or overwrite a document
	GET <table> <key>                fetch one document
	UPDATE <table> <key> <json...>   replace an existing document
	DELETE <table> <key>             remove a document
	QUERY <table> [conditions...]    filter a table

Parsing rules:
  - Verbs match case-insensitively (set, Set and SET are identical)
  - A trailing CR is tolerated, so \r\n line endings work
  - user, pass, table and key are single whitespace-delimited tokens
  - For SET and UPDATE the payload is the raw remainder of the line
    after the key, stripped of leading whitespace; it must decode as
    one JSON value
  - For QUERY the remainder after the table is handed to the query
    parser verbatim; an empty remainder is a valid (match-all) query
  - Fixed-arity commands reject both missing and surplus arguments

Parse errors:
  - ErrUnknownCommand: unrecognized verb
  - ErrBadArguments: wrong argument count (or an empty line)
  - ErrBadJSON: SET/UPDATE payload failed to decode

# Response Framing

Three statuses, one line each:

	Status    Used by                    Payload
	───────   ────────────────────────   ─────────────────────────
	OK        LOGIN, LOGOUT, SET,        human-readable message
	          UPDATE, DELETE
	RESULT    GET, QUERY                 one JSON document, or one
	                                     JSON array of documents
	ERROR     any failed command         error name and detail

The OK/Result/Error helpers append the terminating newline; callers
write the returned string to the socket as-is. RESULT payloads are
single-line JSON (see pkg/document), so a response can never span
lines.

# Usage

Parsing a request:

	import "github.com/sharknado-db/sharknado/pkg/protocol"

	cmd, err := protocol.Parse(line)
	switch {
	case errors.Is(err, protocol.ErrUnknownCommand):
		// "ERROR: UnknownCommand: ..."
	case errors.Is(err, protocol.ErrBadArguments):
		// "ERROR: BadArguments: ..."
	case errors.Is(err, protocol.ErrBadJSON):
		// "ERROR: BadJSON: ..."
	}

	switch cmd.Verb {
	case protocol.VerbLogin:
		// cmd.User, cmd.Pass
	case protocol.VerbSet:
		// cmd.Table, cmd.Key, cmd.Doc (already decoded)
	case protocol.VerbQuery:
		// cmd.Table, cmd.Query (raw condition text)
	}

Framing responses:

	conn.Write([]byte(protocol.OK("Logged in as admin")))
	conn.Write([]byte(protocol.Result(`{"age":30}`)))
	conn.Write([]byte(protocol.Error("Authentication required")))

# Wire Examples

	C: LOGIN admin admin123
	S: OK: Logged in as admin
	C: SET users john {"name":"John","age":30}
	S: OK: Stored users/john
	C: GET users john
	S: RESULT: {"age":30,"name":"John"}
	C: QUERY users age >= 18 name contains "John"
	S: RESULT: [{"age":30,"name":"John"}]
	C: GET users ghost
	S: ERROR: NotFound

# Integration Points

This package integrates with:

  - pkg/document: decodes SET/UPDATE payloads during parsing
  - pkg/server: sessions call Parse per line and the framing
    helpers per response
  - pkg/query: receives the raw QUERY condition text for parsing
  - pkg/client: the connect REPL speaks this protocol from the
    other side

# Design Notes

  - The Command struct is a tagged union by convention: Verb selects
    which fields are meaningful. A closed verb set keeps dispatch a
    simple switch.
  - JSON payload validation happens at parse time, so a session
    never hands the engine an undecoded payload and BadJSON is
    reported before any lock is taken.
  - The parser owns no I/O; it maps one string to one Command, which
    keeps it trivially table-testable.

# Complete Example

A minimal echo-style handler loop built on this package:

	package main

	import (
		"bufio"
		"errors"
		"fmt"
		"net"

		"github.com/sharknado-db/sharknado/pkg/protocol"
	)

	func handle(conn net.Conn) {
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			cmd, err := protocol.Parse(scanner.Text())
			if err != nil {
				switch {
				case errors.Is(err, protocol.ErrUnknownCommand):
					fmt.Fprint(conn, protocol.Error("UnknownCommand"))
				case errors.Is(err, protocol.ErrBadJSON):
					fmt.Fprint(conn, protocol.Error("BadJSON"))
				default:
					fmt.Fprint(conn, protocol.Error("BadArguments"))
				}
				continue
			}
			fmt.Fprint(conn, protocol.OK(string(cmd.Verb)))
		}
	}

# Parsing Edge Cases

	input                          outcome
	────────────────────────────   ─────────────────────────────
	"set Users K {\"a\":1}"        Verb SET (case folded); table
	                               and key case-preserved
	"GET users john\r"             CR stripped, parses normally
	"   LOGIN a b"                 leading whitespace ignored
	"SET t k  {\"a\": 1}"          payload keeps internal spacing;
	                               leading spaces stripped
	"QUERY t"                      empty Query text (match-all)
	"LOGIN a"                      ErrBadArguments
	"LOGOUT now"                   ErrBadArguments (surplus)
	"SET t k"                      ErrBadArguments (no payload)
	"SET t k {"                    ErrBadJSON
	"" (empty line)                ErrBadArguments
	"PING"                         ErrUnknownCommand

Table and key tokens are not validated here beyond being non-empty
single tokens; identifier rules (letters/digits/underscore, no
whitespace in keys) are enforced by the storage engine so that every
entry point shares one rule set.

# Best Practices

Do:
  - Switch on errors.Is for the three sentinel errors when mapping
    to wire error names
  - Write the framing helpers' output unchanged; they own the
    trailing newline
  - Keep RESULT payloads single-line (pkg/document.Encode already
    guarantees this)

Don't:
  - Re-tokenize cmd.Query yourself; hand it to pkg/query
  - Embed newlines in OK/ERROR messages; one response line per
    request is the invariant everything else trusts
  - Add verbs without extending both Parse and the session
    dispatcher; an unknown verb at either layer becomes
    UnknownCommand

# See Also

  - pkg/server for the session state machine that dispatches
    commands
  - pkg/query for the QUERY condition grammar
*/
package protocol
