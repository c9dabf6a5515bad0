package wal

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharknado-db/sharknado/pkg/document"
	"github.com/sharknado-db/sharknado/pkg/log"
	"github.com/sharknado-db/sharknado/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel, Output: io.Discard})
	os.Exit(m.Run())
}

func doc(t *testing.T, s string) any {
	t.Helper()
	v, err := document.Decode(s)
	require.NoError(t, err)
	return v
}

func TestAppendReplayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := Open(path)
	require.NoError(t, err)

	records := []types.Record{
		{Op: types.OpSet, Table: "users", Key: "john", Doc: doc(t, `{"name":"John","age":30}`)},
		{Op: types.OpUpdate, Table: "users", Key: "john", Doc: doc(t, `{"name":"John","age":31}`)},
		{Op: types.OpSet, Table: "products", Key: "p1", Doc: doc(t, `{"specs":{"battery":"30 hours"}}`)},
		{Op: types.OpDelete, Table: "users", Key: "john"},
	}
	for _, rec := range records {
		require.NoError(t, l.Append(rec))
	}
	require.NoError(t, l.Close())

	var replayed []types.Record
	require.NoError(t, Replay(path, func(rec types.Record) {
		replayed = append(replayed, rec)
	}))

	require.Len(t, replayed, len(records))
	for i, rec := range records {
		assert.Equal(t, rec.Op, replayed[i].Op)
		assert.Equal(t, rec.Table, replayed[i].Table)
		assert.Equal(t, rec.Key, replayed[i].Key)
		if rec.Op != types.OpDelete {
			assert.True(t, document.Equal(rec.Doc, replayed[i].Doc))
		}
	}
}

func TestReplayMissingFileIsEmpty(t *testing.T) {
	count := 0
	err := Replay(filepath.Join(t.TempDir(), "absent.log"), func(types.Record) {
		count++
	})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReplaySkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	lines := []string{
		`SET users john {"name":"John"}`,
		`garbage line`,
		`SET users`,
		`SET users broken {not json}`,
		`DELETE users`,
		``,
		`UPDATE users john {"name":"Johnny"}`,
		`DELETE users john`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	var ops []types.Op
	require.NoError(t, Replay(path, func(rec types.Record) {
		ops = append(ops, rec.Op)
	}))

	assert.Equal(t, []types.Op{types.OpSet, types.OpUpdate, types.OpDelete}, ops)
}

func TestReplayToleratesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte("SET t k {\"a\":1}\r\n"), 0644))

	var got []types.Record
	require.NoError(t, Replay(path, func(rec types.Record) {
		got = append(got, rec)
	}))

	require.Len(t, got, 1)
	assert.Equal(t, "k", got[0].Key)
}

func TestEncodeRecordSingleLine(t *testing.T) {
	line, err := encodeRecord(types.Record{
		Op:    types.OpSet,
		Table: "users",
		Key:   "john",
		Doc:   doc(t, `{"bio":"line one\nline two"}`),
	})
	require.NoError(t, err)
	// Embedded newlines must stay escaped so they cannot break framing
	assert.NotContains(t, line, "\n")
}
