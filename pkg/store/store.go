package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sharknado-db/sharknado/pkg/events"
	"github.com/sharknado-db/sharknado/pkg/log"
	"github.com/sharknado-db/sharknado/pkg/metrics"
	"github.com/sharknado-db/sharknado/pkg/query"
	"github.com/sharknado-db/sharknado/pkg/types"
	"github.com/sharknado-db/sharknado/pkg/wal"
)

var (
	// ErrNotFound is returned when a table or key does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidTable is returned for illegal table identifiers
	ErrInvalidTable = errors.New("invalid table name")

	// ErrInvalidKey is returned for illegal document keys
	ErrInvalidKey = errors.New("invalid key")
)

// Entry is one query result: a key and its document
type Entry struct {
	Key string
	Doc any
}

// Engine is the shared document store: an in-memory table/key/document
// map backed by the operation log. All sessions share one Engine; the
// lock serializes the log append and the in-memory apply so recovered
// state is always a prefix of the observed timeline.
type Engine struct {
	mu     sync.RWMutex
	tables map[string]map[string]any
	wal    *wal.Log
	broker *events.Broker
}

// Open builds an engine for the named database inside dataDir: it
// replays <name>.log into memory, then opens the log for appending.
// The broker is optional; when nil no events are published.
func Open(dataDir, name string, broker *events.Broker) (*Engine, error) {
	e := &Engine{
		tables: make(map[string]map[string]any),
		broker: broker,
	}

	path := filepath.Join(dataDir, name+".log")
	logger := log.WithDatabase(name)

	replayed := 0
	err := wal.Replay(path, func(rec types.Record) {
		e.apply(rec)
		replayed++
		metrics.LogRecordsReplayed.Inc()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replay log: %w", err)
	}

	w, err := wal.Open(path)
	if err != nil {
		return nil, err
	}
	e.wal = w

	logger.Info().
		Int("records", replayed).
		Int("tables", len(e.tables)).
		Msg("database recovered from operation log")

	return e, nil
}

// Close closes the underlying operation log
func (e *Engine) Close() error {
	return e.wal.Close()
}

// Set inserts or overwrites a document. The table is created
// implicitly on first use.
func (e *Engine) Set(table, key string, doc any) error {
	if !types.ValidTableName(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if !types.ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec := types.Record{Op: types.OpSet, Table: table, Key: key, Doc: doc}
	if err := e.wal.Append(rec); err != nil {
		metrics.LogAppendFailures.Inc()
		return err
	}
	e.apply(rec)

	metrics.MutationsTotal.WithLabelValues(string(types.OpSet)).Inc()
	e.publish(events.EventDocumentSet, table, key)
	return nil
}

// Get returns the document stored under (table, key)
func (e *Engine) Get(table, key string) (any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", table, ErrNotFound)
	}
	doc, ok := t[key]
	if !ok {
		return nil, fmt.Errorf("key %s/%s: %w", table, key, ErrNotFound)
	}
	return doc, nil
}

// Update replaces an existing document; unlike Set it refuses keys
// that are not present
func (e *Engine) Update(table, key string, doc any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tables[table]
	if !ok {
		return fmt.Errorf("table %s: %w", table, ErrNotFound)
	}
	if _, ok := t[key]; !ok {
		return fmt.Errorf("key %s/%s: %w", table, key, ErrNotFound)
	}

	rec := types.Record{Op: types.OpUpdate, Table: table, Key: key, Doc: doc}
	if err := e.wal.Append(rec); err != nil {
		metrics.LogAppendFailures.Inc()
		return err
	}
	e.apply(rec)

	metrics.MutationsTotal.WithLabelValues(string(types.OpUpdate)).Inc()
	e.publish(events.EventDocumentUpdated, table, key)
	return nil
}

// Delete removes a document. Deleting an absent key succeeds; the
// record is still appended to the log for traceability.
func (e *Engine) Delete(table, key string) error {
	if !types.ValidTableName(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if !types.ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec := types.Record{Op: types.OpDelete, Table: table, Key: key}
	if err := e.wal.Append(rec); err != nil {
		metrics.LogAppendFailures.Inc()
		return err
	}
	e.apply(rec)

	metrics.MutationsTotal.WithLabelValues(string(types.OpDelete)).Inc()
	e.publish(events.EventDocumentDeleted, table, key)
	return nil
}

// Query evaluates conditions over every document in a table and
// returns the matching entries. No ordering is guaranteed.
func (e *Engine) Query(table string, conds []query.Condition) ([]Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", table, ErrNotFound)
	}

	var matches []Entry
	for key, doc := range t {
		if query.Matches(doc, conds) {
			matches = append(matches, Entry{Key: key, Doc: doc})
		}
	}
	return matches, nil
}

// Tables returns the names of all tables
func (e *Engine) Tables() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.tables))
	for name := range e.tables {
		names = append(names, name)
	}
	return names
}

// Len returns the number of documents in a table (0 if absent)
func (e *Engine) Len(table string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.tables[table])
}

// apply mutates the in-memory state with an already-durable record.
// Callers hold the write lock (or have exclusive access during
// replay).
func (e *Engine) apply(rec types.Record) {
	switch rec.Op {
	case types.OpSet, types.OpUpdate:
		t, ok := e.tables[rec.Table]
		if !ok {
			t = make(map[string]any)
			e.tables[rec.Table] = t
		}
		t[rec.Key] = rec.Doc

	case types.OpDelete:
		if t, ok := e.tables[rec.Table]; ok {
			delete(t, rec.Key)
		}
	}
}

func (e *Engine) publish(typ events.EventType, table, key string) {
	if e.broker == nil {
		return
	}
	e.broker.Publish(&events.Event{
		Type:  typ,
		Table: table,
		Key:   key,
	})
}
