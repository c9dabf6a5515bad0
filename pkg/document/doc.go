/*
Package document implements the JSON value model shared by the storage
engine, the wire protocol and the query evaluator.

Documents are stored and compared as plain JSON trees. This package
owns the three semantics every other component leans on: how JSON text
becomes a tree (and back), when two values are equal, and how a dotted
path addresses a sub-value.

# Architecture

A document is an untyped tree built from exactly six shapes:

	┌──────────────────── VALUE MODEL ─────────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │              Decoded Values                 │          │
	│  │                                              │          │
	│  │  JSON null    → nil                          │          │
	│  │  JSON bool    → bool                         │          │
	│  │  JSON number  → json.Number                  │          │
	│  │  JSON string  → string                       │          │
	│  │  JSON array   → []any                        │          │
	│  │  JSON object  → map[string]any               │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Operations                     │          │
	│  │                                              │          │
	│  │  Decode   text → tree (UseNumber, strict)    │          │
	│  │  Encode   tree → single-line JSON            │          │
	│  │  Resolve  dotted path → sub-value            │          │
	│  │  Equal    structural equality                │          │
	│  │  Compare  ordering for numbers and strings   │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

Numbers decode as json.Number rather than float64 so integers survive
a round-trip unchanged: {"age":30} encodes back as 30, not 3e+01 or
30.000000, and the operation log stays byte-stable across replay
cycles.

# Decoding Rules

Decode parses exactly one JSON value:
  - Numbers are kept as json.Number (integer/float distinction
    preserved until a comparison forces promotion)
  - Trailing content after the first value is an error, so a SET
    payload cannot smuggle a second document
  - Empty input is an error

Encode produces a single line with no trailing newline. Object key
order follows encoding/json (sorted), which keeps log records and
wire responses deterministic.

# Path Resolution

Resolve walks a non-empty dotted path, one segment at a time:

	state           segment meaning         miss condition
	─────────────   ────────────────────    ──────────────────────
	object          field name              field absent
	array           decimal index           non-integer segment,
	                                        negative, out of range
	primitive       (none allowed)          any segment remaining

Examples against {"specs":{"battery":"30 hours"},"tags":["rust","db"]}:

	specs.battery  → "30 hours"
	tags.0         → "rust"
	tags.2         → missing (out of range)
	tags.first     → missing (array wants an index)
	specs.battery.x → missing (primitive reached early)

The second return value reports whether the path resolved; callers
decide what a miss means (the query evaluator maps it to a false
condition, never an error).

# Equality and Ordering

Equal is structural:
  - Numbers compare numerically with integer/float promotion:
    30 == 30.0
  - Strings, bools and null compare directly
  - Arrays compare element-wise in order
  - Objects compare by key set and per-key values; key order is
    irrelevant
  - Values of different kinds are unequal (no coercion: 30 != "30")

Compare is partial:
  - number vs number: numeric order after promotion to float64
  - string vs string: byte-wise lexicographic order
  - every other pairing: ok=false, the caller treats the comparison
    as undefined rather than erroring

# Usage

Round trip:

	v, err := document.Decode(`{"name":"John","age":30}`)
	if err != nil {
		// invalid JSON
	}
	line, _ := document.Encode(v) // {"age":30,"name":"John"}

Path lookup:

	battery, ok := document.Resolve(v, "specs.battery")
	if !ok {
		// path missing: object field absent, bad index, or
		// primitive hit before the path was consumed
	}

Comparison:

	if document.Equal(a, b) { ... }

	if cmp, ok := document.Compare(a, b); ok && cmp > 0 { ... }

# Integration Points

This package integrates with:

  - pkg/protocol: validates SET/UPDATE payloads and encodes
    GET/QUERY responses
  - pkg/query: Resolve/Equal/Compare implement the operator
    semantics
  - pkg/wal: encodes and decodes log record payloads
  - pkg/server: encodes result payloads onto the wire

# Design Notes

  - The tree is the exact output of encoding/json with UseNumber; no
    wrapper types, no interfaces to implement. Anything that can
    json.Marshal can be stored, but documents arriving over the wire
    or from the log always have the six shapes above.
  - Resolution is a simple iterative descent; paths are split on
    every dot and there is no escaping, so field names containing
    dots are not addressable. Key names with dots still store and
    retrieve fine; they just cannot be queried by path.
  - Mutating a tree returned by the engine is the caller's
    responsibility to avoid; handlers treat documents as read-only.

# Complete Example

	package main

	import (
		"fmt"

		"github.com/sharknado-db/sharknado/pkg/document"
	)

	func main() {
		laptop, err := document.Decode(
			`{"name":"Axiom 14","specs":{"battery":"30 hours",` +
				`"ports":["usb-c","hdmi"]},"price":1299}`)
		if err != nil {
			panic(err)
		}

		// Dotted paths into nested objects and arrays
		battery, _ := document.Resolve(laptop, "specs.battery")
		firstPort, _ := document.Resolve(laptop, "specs.ports.0")
		fmt.Println(battery, firstPort) // 30 hours usb-c

		// Misses report false instead of erroring
		if _, ok := document.Resolve(laptop, "specs.weight"); !ok {
			fmt.Println("weight unknown")
		}

		// Numeric promotion: 1299 equals 1299.0
		price, _ := document.Resolve(laptop, "price")
		lit, _ := document.Decode("1299.0")
		fmt.Println(document.Equal(price, lit)) // true

		// Deterministic single-line round trip
		line, _ := document.Encode(laptop)
		fmt.Println(line)
	}

# Type Promotion Table

How the comparison primitives pair value kinds:

	left \ right   null   bool   number   string   array   object
	────────────   ────   ────   ──────   ──────   ─────   ──────
	null           E      -      -        -        -       -
	bool           -      E      -        -        -       -
	number         -      -      E,C      -        -       -
	string         -      -      -        E,C      -       -
	array          -      -      -        -        E       -
	object         -      -      -        -        -       E

	E = Equal defined (structural), C = Compare defined (ordering),
	- = Equal false, Compare undefined (ok=false)

Within numbers, json.Number, float64, int and int64 all promote to
float64 for comparison, so trees built in Go code compare correctly
against decoded wire data.

# Best Practices

Do:
  - Always go through Decode for external input; it enforces the
    single-value rule and number fidelity
  - Check the ok result of Resolve; a miss is a normal outcome, not
    an exceptional one
  - Compare with Equal/Compare instead of == on any values

Don't:
  - Build documents with float64 literals when integer identity
    matters in the log (use Decode or json.Number)
  - Assume Resolve can address keys containing dots
  - Depend on map iteration order of decoded objects; only Encode
    output order (sorted keys) is stable

# See Also

  - pkg/query for how the comparison semantics become operators
  - pkg/wal for payload encoding in log records
*/
package document
