package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := &Config{Registry: Registry{
		URL:            "https://ice.example.org",
		Email:          "ada@example.org",
		Password:       "secret",
		PartPrefix:     "SBC",
		TimeoutSeconds: 30,
	}}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 30*time.Second, loaded.Registry.Timeout())
}

func TestSave_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{Registry: Registry{URL: "https://ice.example.org", Password: "secret"}}
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config may hold credentials")
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("registry = [broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestRegistry_ZeroTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), Registry{}.Timeout())
}
