package store

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
	"github.com/sharknado-db/sharknado/pkg/query"
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

func openEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := Open(dir, "testdb", nil)
	require.NoError(t, err)
	return e
}

func logLines(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "testdb.log"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	content := strings.TrimRight(string(data), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func TestSetGet(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	want := doc(t, `{"name":"John","age":30}`)
	require.NoError(t, e.Set("users", "john", want))

	got, err := e.Get("users", "john")
	require.NoError(t, err)
	assert.True(t, document.Equal(want, got))

	// Overwrite through Set
	require.NoError(t, e.Set("users", "john", doc(t, `{"age":31}`)))
	got, err = e.Get("users", "john")
	require.NoError(t, err)
	assert.True(t, document.Equal(doc(t, `{"age":31}`), got))
}

func TestGetMissing(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	_, err := e.Get("users", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, e.Set("users", "john", doc(t, `{}`)))
	_, err = e.Get("users", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRequiresExistingKey(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	err := e.Update("users", "ghost", doc(t, `{"x":1}`))
	assert.ErrorIs(t, err, ErrNotFound)

	// A rejected mutation must leave no trace in the log
	assert.Empty(t, logLines(t, dir))

	require.NoError(t, e.Set("users", "john", doc(t, `{"x":1}`)))
	require.NoError(t, e.Update("users", "john", doc(t, `{"x":2}`)))

	got, err := e.Get("users", "john")
	require.NoError(t, err)
	assert.True(t, document.Equal(doc(t, `{"x":2}`), got))
}

func TestDeleteAbsentIsLoggedNoOp(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Delete("users", "absent"))

	lines := logLines(t, dir)
	require.Len(t, lines, 1)
	assert.Equal(t, "DELETE users absent", lines[0])
	assert.Zero(t, e.Len("users"))
}

func TestDeleteThenGet(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("users", "john", doc(t, `{}`)))
	require.NoError(t, e.Delete("users", "john"))

	_, err := e.Get("users", "john")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidation(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	assert.ErrorIs(t, e.Set("bad-table", "k", doc(t, `{}`)), ErrInvalidTable)
	assert.ErrorIs(t, e.Set("", "k", doc(t, `{}`)), ErrInvalidTable)
	assert.ErrorIs(t, e.Set("t", "", doc(t, `{}`)), ErrInvalidKey)
	assert.ErrorIs(t, e.Delete("t", "bad key"), ErrInvalidKey)
	assert.Empty(t, logLines(t, dir))
}

func TestRestartReplayRebuildsState(t *testing.T) {
	dir := t.TempDir()

	e := openEngine(t, dir)
	require.NoError(t, e.Set("users", "john", doc(t, `{"name":"John","age":30}`)))
	require.NoError(t, e.Set("users", "jane", doc(t, `{"name":"Jane"}`)))
	require.NoError(t, e.Update("users", "jane", doc(t, `{"name":"Jane","age":40}`)))
	require.NoError(t, e.Set("products", "p1", doc(t, `{"sku":1}`)))
	require.NoError(t, e.Delete("products", "p1"))
	require.NoError(t, e.Close())

	// Reopen on the same database name: replay must reproduce state
	e2 := openEngine(t, dir)
	defer e2.Close()

	got, err := e2.Get("users", "john")
	require.NoError(t, err)
	assert.True(t, document.Equal(doc(t, `{"name":"John","age":30}`), got))

	got, err = e2.Get("users", "jane")
	require.NoError(t, err)
	assert.True(t, document.Equal(doc(t, `{"name":"Jane","age":40}`), got))

	_, err = e2.Get("products", "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, e2.Len("users"))
}

func TestQuery(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("users", "u1", doc(t, `{"age":30,"name":"Johnny"}`)))
	require.NoError(t, e.Set("users", "u2", doc(t, `{"age":40,"name":"Jane"}`)))
	require.NoError(t, e.Set("users", "u3", doc(t, `{"age":20,"name":"John"}`)))

	conds, err := query.Parse(`age >= 18 name contains "John"`)
	require.NoError(t, err)

	entries, err := e.Query("users", conds)
	require.NoError(t, err)

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}
	assert.ElementsMatch(t, []string{"u1", "u3"}, keys)
}

func TestQueryEmptyConditionsReturnsAll(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("users", "u1", doc(t, `{}`)))
	require.NoError(t, e.Set("users", "u2", doc(t, `{}`)))

	entries, err := e.Query("users", nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestQueryMissingTable(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir)
	defer e.Close()

	_, err := e.Query("absent", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
