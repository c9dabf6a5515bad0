package wal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sharknado-db/sharknado/pkg/document"
	"github.com/sharknado-db/sharknado/pkg/log"
	"github.com/sharknado-db/sharknado/pkg/types"
)

// Log is the append-only operation journal backing a database. Every
// mutation is serialized as one line and flushed before the in-memory
// state is allowed to change.
type Log struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// Open opens (or creates) the log file for appending. Replay reads the
// file independently, so Open may be called before or after Replay.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", path, err)
	}
	return &Log{path: path, f: f}, nil
}

// Append serializes a record as a single line, writes it to the log
// and syncs the file. The caller must not apply the mutation in
// memory unless Append returns nil.
func (l *Log) Append(rec types.Record) error {
	line, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to log: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync log: %w", err)
	}
	return nil
}

// Replay reads the log from the beginning and invokes fn for every
// valid record in order. A missing file is an empty log. Malformed
// lines are skipped with a warning.
func Replay(path string, fn func(types.Record)) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open log %s: %w", path, err)
	}
	defer f.Close()

	logger := log.WithComponent("wal")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		rec, err := decodeRecord(line)
		if err != nil {
			logger.Warn().
				Int("line", lineNo).
				Err(err).
				Msg("skipping malformed log record")
			continue
		}
		fn(rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log %s: %w", path, err)
	}
	return nil
}

// Close closes the log file
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// Path returns the log file path
func (l *Log) Path() string {
	return l.path
}

// encodeRecord renders a record as "VERB table key [json]". Encoded
// JSON is always a single line, so the line framing cannot be broken
// by document content.
func encodeRecord(rec types.Record) (string, error) {
	switch rec.Op {
	case types.OpSet, types.OpUpdate:
		payload, err := document.Encode(rec.Doc)
		if err != nil {
			return "", fmt.Errorf("failed to encode log payload: %w", err)
		}
		return fmt.Sprintf("%s %s %s %s", rec.Op, rec.Table, rec.Key, payload), nil
	case types.OpDelete:
		return fmt.Sprintf("%s %s %s", rec.Op, rec.Table, rec.Key), nil
	}
	return "", fmt.Errorf("unknown log op: %s", rec.Op)
}

func decodeRecord(line string) (types.Record, error) {
	verb, rest, _ := strings.Cut(line, " ")

	switch types.Op(verb) {
	case types.OpSet, types.OpUpdate:
		table, rest, ok := cutField(rest)
		if !ok {
			return types.Record{}, fmt.Errorf("truncated %s record", verb)
		}
		key, payload, ok := cutField(rest)
		if !ok {
			return types.Record{}, fmt.Errorf("truncated %s record", verb)
		}
		doc, err := document.Decode(payload)
		if err != nil {
			return types.Record{}, fmt.Errorf("bad %s payload: %w", verb, err)
		}
		return types.Record{Op: types.Op(verb), Table: table, Key: key, Doc: doc}, nil

	case types.OpDelete:
		table, key, ok := cutField(rest)
		if !ok || key == "" || strings.ContainsRune(key, ' ') {
			return types.Record{}, fmt.Errorf("truncated DELETE record")
		}
		return types.Record{Op: types.OpDelete, Table: table, Key: key}, nil
	}

	return types.Record{}, fmt.Errorf("unknown log verb %q", verb)
}

// cutField splits the next space-delimited field off a record line
func cutField(s string) (field, rest string, ok bool) {
	field, rest, found := strings.Cut(s, " ")
	if !found || field == "" || rest == "" {
		return "", "", false
	}
	return field, rest, true
}
