/*
Package query implements the predicate evaluator behind the QUERY
command: a small condition grammar parsed from the request line and
evaluated as a conjunction over every document in one table.

The evaluator is deliberately forgiving at evaluation time and strict
at parse time: an unparseable query is rejected as malformed, but a
condition that compares incompatible types is simply false, so
heterogeneous tables can be queried without per-row failures.

# Architecture

	┌──────────────────── QUERY EVALUATOR ─────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │                 Parse                       │          │
	│  │                                              │          │
	│  │  "age >= 18 name contains \"John\""          │          │
	│  │        ↓ whitespace tokenize                 │          │
	│  │  [age] [>=] [18] [name] [contains] ["John"]  │          │
	│  │        ↓ groups of three                     │          │
	│  │  Condition{age >= 18}                        │          │
	│  │  Condition{name contains "John"}             │          │
	│  │                                              │          │
	│  │  not a multiple of 3 → ErrMalformed          │          │
	│  │  unknown operator    → ErrMalformed          │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │                Matches                      │          │
	│  │                                              │          │
	│  │  for each condition:                         │          │
	│  │    resolve dotted path into the document     │          │
	│  │    apply operator against the literal        │          │
	│  │  AND over all conditions                     │          │
	│  │  empty condition list → true                 │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Grammar

A query string is a whitespace-separated sequence of three-token
groups:

	<path> <operator> <literal>  [<path> <operator> <literal> ...]

Paths:
  - Dotted paths into the document (see pkg/document), e.g. age,
    specs.battery, tags.0

Operators:

	=   !=   >   <   >=   <=   contains

Literals:
  - Tokens that look like JSON parse as JSON: a leading quote, a
    number, true, false or null
  - Everything else is a bare string: name contains John and
    name contains "John" mean the same thing
  - A token that looks like JSON but fails to parse (an unterminated
    quote, a malformed number) falls back to its raw text

Because tokens split on whitespace, string literals containing spaces
cannot be expressed; quote a single word or match a distinctive
substring instead.

# Operator Semantics

Equality:
  - = is structural equality on the resolved value; numbers compare
    numerically across integer/float forms (age = 30 matches 30.0)
  - != is the negation, and a missing path satisfies it: != means
    "is not known to be this value"
  - = on a missing path is false

Ordering (>, <, >=, <=):
  - Defined for number vs number (after promotion) and string vs
    string (byte order)
  - A missing path or a type mismatch makes the condition false,
    never an error: {"name":"John"} against age > 10 simply does not
    match

contains:
  - string value, string literal: substring match
  - array value, any literal: membership by structural equality
    (tags contains "rust" matches ["rust","db"]; "ru" does not)
  - every other pairing: false

# Usage

Parsing and evaluating:

	import "github.com/sharknado-db/sharknado/pkg/query"

	conds, err := query.Parse(`age >= 18 name contains "John"`)
	if errors.Is(err, query.ErrMalformed) {
		// reject the request
	}

	if query.Matches(doc, conds) {
		// document satisfies every condition
	}

Typical patterns:

	age > 29.5                     numeric range (int/float mix fine)
	role = "admin" active = true   conjunction
	specs.battery contains "30"    nested path substring
	tags contains "db"             array membership
	deleted != true                absent field also matches

An empty query string parses to an empty condition list, which
matches every document; QUERY <table> with no conditions is a full
table listing.

# Integration Points

This package integrates with:

  - pkg/document: Resolve/Equal/Compare provide all value semantics
  - pkg/store: Engine.Query filters a table scan through Matches
  - pkg/server: sessions parse the QUERY remainder of the line

# Design Notes

  - Conditions are pure data (path, operator, literal); parsing and
    evaluation are separate so the engine can evaluate one parsed
    query against many documents
  - There is no OR, no negation of groups, no parentheses; the
    grammar stays token-count-checkable and needs no precedence
    rules
  - Silent-false on mismatch trades per-row type errors for the
    ability to store differently-shaped documents in one table,
    which the data model explicitly allows

# Limitations

  - Conjunction only; run multiple queries for unions
  - No string literals with embedded whitespace
  - Paths cannot address field names that contain dots
  - Every query is a full table scan; there are no indexes

# Complete Example

	package main

	import (
		"fmt"

		"github.com/sharknado-db/sharknado/pkg/document"
		"github.com/sharknado-db/sharknado/pkg/query"
	)

	func main() {
		docs := []string{
			`{"name":"Johnny","age":30,"tags":["admin"]}`,
			`{"name":"Jane","age":40}`,
			`{"name":"John","age":20,"specs":{"battery":"30 hours"}}`,
		}

		conds, err := query.Parse(`age >= 18 name contains "John"`)
		if err != nil {
			panic(err)
		}

		for _, raw := range docs {
			doc, _ := document.Decode(raw)
			if query.Matches(doc, conds) {
				fmt.Println(raw) // Johnny and John, not Jane
			}
		}
	}

# Evaluation Flow

For one document and one parsed query:

 1. Take the next condition
 2. Resolve its path against the document (pkg/document)
 3. Apply the operator:
    - missing path: != is true, everything else false
    - = / !=: structural equality against the literal
    - ordering: Compare; undefined pairings are false
    - contains: substring or array membership
 4. A false condition short-circuits the document out
 5. All conditions true → the document matches

The table scan in pkg/store repeats this per document under the read
lock; conditions are parsed once per query, not per row.

# Edge Case Catalog

	document                 condition              result
	──────────────────────   ────────────────────   ──────
	{"age":30}               age = 30.0             match
	{"age":30}               age > 29.5             match
	{"name":"John"}          age > 10               no (mismatch,
	                                                not an error)
	{"name":"John"}          age != 99              match (missing
	                                                satisfies !=)
	{"tags":["rust","db"]}   tags contains "rust"   match
	{"tags":["rust","db"]}   tags contains "ru"     no (membership,
	                                                not substring)
	{"specs":{"b":"30h"}}    specs.b contains "30"  match
	{}                       (empty query)          match

# Best Practices

Do:
  - Parse once and reuse the condition slice across documents
  - Quote string literals for clarity even though bare words work
  - Use != deliberately: it matches documents missing the field

Don't:
  - Expect errors from type mismatches; absence of a match is the
    only signal
  - Encode OR logic as one query; issue several queries and merge
  - Rely on result ordering downstream; matches arrive in map
    iteration order

# See Also

  - pkg/document for path resolution and comparison rules
  - pkg/store for how queries execute under the read lock
*/
package query
