package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sharknado-db/sharknado/pkg/document"
)

var (
	// ErrUnknownCommand is returned for an unrecognized verb
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArguments is returned when a command has the wrong number
	// of arguments
	ErrBadArguments = errors.New("bad arguments")

	// ErrBadJSON is returned when a SET/UPDATE payload fails to parse
	ErrBadJSON = errors.New("invalid JSON payload")
)

// Verb identifies a protocol command
type Verb string

const (
	VerbLogin  Verb = "LOGIN"
	VerbLogout Verb = "LOGOUT"
	VerbSet    Verb = "SET"
	VerbGet    Verb = "GET"
	VerbUpdate Verb = "UPDATE"
	VerbDelete Verb = "DELETE"
	VerbQuery  Verb = "QUERY"
)

// Command is one parsed request line. Fields beyond Verb are filled
// according to the verb: User/Pass for LOGIN, Table/Key for data
// commands, Doc for SET/UPDATE, Query for QUERY.
type Command struct {
	Verb  Verb
	User  string
	Pass  string
	Table string
	Key   string
	Doc   any
	Query string
}

// Parse tokenizes a single request line into a command. Verbs match
// case-insensitively; the SET/UPDATE payload and the QUERY condition
// list are the raw remainder of the line.
func Parse(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)

	verbToken, rest, _ := strings.Cut(line, " ")
	if verbToken == "" {
		return Command{}, fmt.Errorf("%w: empty line", ErrBadArguments)
	}
	rest = strings.TrimSpace(rest)

	switch Verb(strings.ToUpper(verbToken)) {
	case VerbLogin:
		args := strings.Fields(rest)
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: LOGIN <user> <pass>", ErrBadArguments)
		}
		return Command{Verb: VerbLogin, User: args[0], Pass: args[1]}, nil

	case VerbLogout:
		if rest != "" {
			return Command{}, fmt.Errorf("%w: LOGOUT takes no arguments", ErrBadArguments)
		}
		return Command{Verb: VerbLogout}, nil

	case VerbGet:
		table, key, err := twoArgs(rest, "GET <table> <key>")
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: VerbGet, Table: table, Key: key}, nil

	case VerbDelete:
		table, key, err := twoArgs(rest, "DELETE <table> <key>")
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: VerbDelete, Table: table, Key: key}, nil

	case VerbSet:
		return payloadCommand(VerbSet, rest, "SET <table> <key> <json>")

	case VerbUpdate:
		return payloadCommand(VerbUpdate, rest, "UPDATE <table> <key> <json>")

	case VerbQuery:
		table, conds, _ := strings.Cut(rest, " ")
		if table == "" {
			return Command{}, fmt.Errorf("%w: QUERY <table> [conditions]", ErrBadArguments)
		}
		return Command{Verb: VerbQuery, Table: table, Query: strings.TrimSpace(conds)}, nil
	}

	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, verbToken)
}

// twoArgs splits rest into exactly two whitespace-delimited arguments
func twoArgs(rest, usage string) (string, string, error) {
	args := strings.Fields(rest)
	if len(args) != 2 {
		return "", "", fmt.Errorf("%w: %s", ErrBadArguments, usage)
	}
	return args[0], args[1], nil
}

// payloadCommand parses "<table> <key> <json...>" where the payload is
// the unparsed remainder of the line
func payloadCommand(verb Verb, rest, usage string) (Command, error) {
	table, rest, ok := strings.Cut(rest, " ")
	if !ok || table == "" {
		return Command{}, fmt.Errorf("%w: %s", ErrBadArguments, usage)
	}
	rest = strings.TrimLeft(rest, " \t")
	key, payload, ok := strings.Cut(rest, " ")
	if !ok || key == "" {
		return Command{}, fmt.Errorf("%w: %s", ErrBadArguments, usage)
	}
	payload = strings.TrimLeft(payload, " \t")
	if payload == "" {
		return Command{}, fmt.Errorf("%w: %s", ErrBadArguments, usage)
	}

	doc, err := document.Decode(payload)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	return Command{Verb: verb, Table: table, Key: key, Doc: doc}, nil
}

// Status is the leading token of a response line
type Status string

const (
	StatusOK     Status = "OK"
	StatusResult Status = "RESULT"
	StatusError  Status = "ERROR"
)

// OK frames a success response
func OK(msg string) string {
	return fmt.Sprintf("%s: %s\n", StatusOK, msg)
}

// Result frames a payload response (GET and QUERY)
func Result(payload string) string {
	return fmt.Sprintf("%s: %s\n", StatusResult, payload)
}

// Error frames an error response
func Error(msg string) string {
	return fmt.Sprintf("%s: %s\n", StatusError, msg)
}
