package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document values are plain JSON trees as produced by Decode:
// nil, bool, json.Number, string, []any and map[string]any.

// Decode parses s as a single JSON value. Numbers are decoded as
// json.Number so integers survive a round-trip unchanged.
func Decode(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	// Reject trailing content after the first value
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: trailing data after value")
	}
	return v, nil
}

// Encode serializes a document as single-line JSON
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// Resolve walks a dotted path into a document. Object segments are
// field names; array segments must be non-negative integer indexes.
// The second return is false when the path does not resolve: missing
// field, index out of range, non-numeric segment on an array, or a
// primitive reached with segments remaining.
func Resolve(doc any, path string) (any, bool) {
	current := doc
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil, false
		}

		switch v := current.(type) {
		case map[string]any:
			child, ok := v[segment]
			if !ok {
				return nil, false
			}
			current = child

		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			current = v[idx]

		default:
			// Primitive with path segments remaining
			return nil, false
		}
	}
	return current, true
}

// Equal reports structural equality of two documents. Integer and
// floating numbers compare equal when numerically equal.
func Equal(a, b any) bool {
	an, aIsNum := toFloat(a)
	bn, bIsNum := toFloat(b)
	if aIsNum || bIsNum {
		return aIsNum && bIsNum && an == bn
	}

	switch av := a.(type) {
	case nil:
		return b == nil

	case bool:
		bv, ok := b.(bool)
		return ok && av == bv

	case string:
		bv, ok := b.(string)
		return ok && av == bv

	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bchild, present := bv[k]
			if !present || !Equal(v, bchild) {
				return false
			}
		}
		return true
	}

	return false
}

// Compare orders two documents. It is defined only for number/number
// (after integer-to-float promotion) and string/string (byte order);
// every other pairing returns ok=false.
func Compare(a, b any) (int, bool) {
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}

	return 0, false
}

// toFloat extracts a numeric value from any of the number
// representations a document tree may carry
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
