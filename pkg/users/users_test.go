package users

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharknado-db/sharknado/pkg/types"
)

func openDir(t *testing.T, dir string) *Directory {
	t.Helper()
	d, err := Open(dir, nil)
	require.NoError(t, err)
	return d
}

func TestCreateAuthenticate(t *testing.T) {
	d := openDir(t, t.TempDir())

	require.NoError(t, d.Create("admin", "admin123", types.RoleAdmin))

	role, err := d.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, role)

	_, err = d.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = d.Authenticate("nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateConflict(t *testing.T) {
	d := openDir(t, t.TempDir())

	require.NoError(t, d.Create("john", "pw", types.RoleUser))
	assert.ErrorIs(t, d.Create("john", "other", types.RoleUser), ErrConflict)
}

func TestCreateValidation(t *testing.T) {
	d := openDir(t, t.TempDir())

	assert.Error(t, d.Create("", "pw", types.RoleUser))
	assert.Error(t, d.Create("x", "pw", types.Role("root")))
}

func TestPasswordsStoredHashed(t *testing.T) {
	dir := t.TempDir()
	d := openDir(t, dir)
	require.NoError(t, d.Create("john", "secret", types.RoleUser))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	stored := raw["john"]["password"]
	assert.NotEqual(t, "secret", stored)
	assert.Contains(t, stored, "$2")
}

func TestLegacyCleartextPasswordsStillAuthenticate(t *testing.T) {
	dir := t.TempDir()
	file := `{"admin": {"password": "admin123", "role": "admin"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(file), 0600))

	d := openDir(t, dir)

	role, err := d.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, role)

	_, err = d.Authenticate("admin", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate(t *testing.T) {
	d := openDir(t, t.TempDir())
	require.NoError(t, d.Create("john", "pw", types.RoleUser))

	require.NoError(t, d.Update("john", "password", "newpw"))
	_, err := d.Authenticate("john", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	role, err := d.Authenticate("john", "newpw")
	require.NoError(t, err)
	assert.Equal(t, types.RoleUser, role)

	require.NoError(t, d.Update("john", "role", "admin"))
	role, err = d.Authenticate("john", "newpw")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, role)

	assert.ErrorIs(t, d.Update("ghost", "password", "x"), ErrNotFound)
	assert.ErrorIs(t, d.Update("john", "shoe_size", "44"), ErrBadField)
	assert.Error(t, d.Update("john", "role", "superuser"))
}

func TestDelete(t *testing.T) {
	d := openDir(t, t.TempDir())
	require.NoError(t, d.Create("john", "pw", types.RoleUser))

	require.NoError(t, d.Delete("john"))
	assert.ErrorIs(t, d.Delete("john"), ErrNotFound)

	_, err := d.Authenticate("john", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListSorted(t *testing.T) {
	d := openDir(t, t.TempDir())
	require.NoError(t, d.Create("zoe", "pw", types.RoleUser))
	require.NoError(t, d.Create("ann", "pw", types.RoleAdmin))

	list := d.List()
	require.Len(t, list, 2)
	assert.Equal(t, "ann", list[0].Username)
	assert.Equal(t, "zoe", list[1].Username)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	d := openDir(t, dir)
	require.NoError(t, d.Create("john", "pw", types.RoleUser))

	d2 := openDir(t, dir)
	role, err := d2.Authenticate("john", "pw")
	require.NoError(t, err)
	assert.Equal(t, types.RoleUser, role)
}

func TestMissingFileIsEmptyDirectory(t *testing.T) {
	d := openDir(t, t.TempDir())
	assert.Empty(t, d.List())
}
