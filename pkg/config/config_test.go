package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.MetricsListen)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen: ":9000"
metrics_listen: ":9100"
data_dir: /var/lib/sharknado
database: inventory
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, ":9100", cfg.MetricsListen)
	assert.Equal(t, "/var/lib/sharknado", cfg.DataDir)
	assert.Equal(t, "inventory", cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: mydb\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mydb", cfg.Database)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, ".", cfg.DataDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
