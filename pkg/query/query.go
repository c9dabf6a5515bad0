package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sharknado-db/sharknado/pkg/document"
)

// ErrMalformed is returned when a query string cannot be parsed
var ErrMalformed = errors.New("malformed query")

// Operator is a comparison operator in a query condition
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpContains     Operator = "contains"
)

var operators = map[string]Operator{
	"=":        OpEqual,
	"!=":       OpNotEqual,
	">":        OpGreater,
	"<":        OpLess,
	">=":       OpGreaterEqual,
	"<=":       OpLessEqual,
	"contains": OpContains,
}

// Condition is a single predicate: a dotted path into the document,
// an operator, and a literal to compare against
type Condition struct {
	Path    string
	Op      Operator
	Literal any
}

// Parse tokenizes a query string into a list of conditions. The
// grammar is a whitespace-separated sequence of three-token groups:
// path operator literal. An empty string parses to no conditions.
func Parse(s string) ([]Condition, error) {
	tokens := strings.Fields(s)
	if len(tokens)%3 != 0 {
		return nil, fmt.Errorf("%w: expected groups of 3 tokens, got %d tokens", ErrMalformed, len(tokens))
	}

	conds := make([]Condition, 0, len(tokens)/3)
	for i := 0; i < len(tokens); i += 3 {
		op, ok := operators[tokens[i+1]]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrMalformed, tokens[i+1])
		}
		conds = append(conds, Condition{
			Path:    tokens[i],
			Op:      op,
			Literal: parseLiteral(tokens[i+2]),
		})
	}
	return conds, nil
}

// parseLiteral interprets a token as JSON when it looks like JSON
// (quoted string, number, true/false/null); anything else is a bare
// string literal
func parseLiteral(token string) any {
	if looksLikeJSON(token) {
		if v, err := document.Decode(token); err == nil {
			return v
		}
	}
	return token
}

func looksLikeJSON(token string) bool {
	switch token {
	case "true", "false", "null":
		return true
	}
	if strings.HasPrefix(token, "\"") {
		return true
	}
	c := token[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// Matches evaluates all conditions against a document and reports
// whether every one holds. An empty condition list matches every
// document.
func Matches(doc any, conds []Condition) bool {
	for _, c := range conds {
		if !matchCondition(doc, c) {
			return false
		}
	}
	return true
}

func matchCondition(doc any, c Condition) bool {
	value, found := document.Resolve(doc, c.Path)

	switch c.Op {
	case OpEqual:
		return found && document.Equal(value, c.Literal)

	case OpNotEqual:
		return !found || !document.Equal(value, c.Literal)

	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		if !found {
			return false
		}
		cmp, ok := document.Compare(value, c.Literal)
		if !ok {
			// Type mismatch is false, not an error, so heterogeneous
			// tables can be queried without per-row failures
			return false
		}
		switch c.Op {
		case OpGreater:
			return cmp > 0
		case OpLess:
			return cmp < 0
		case OpGreaterEqual:
			return cmp >= 0
		default:
			return cmp <= 0
		}

	case OpContains:
		if !found {
			return false
		}
		return matchContains(value, c.Literal)
	}

	return false
}

// matchContains implements the contains operator: substring match when
// both sides are strings, membership by structural equality when the
// resolved value is an array
func matchContains(value, literal any) bool {
	switch v := value.(type) {
	case string:
		s, ok := literal.(string)
		return ok && strings.Contains(v, s)
	case []any:
		for _, elem := range v {
			if document.Equal(elem, literal) {
				return true
			}
		}
	}
	return false
}
