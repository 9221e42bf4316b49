package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "default", cfg.DefaultUser)
	assert.Equal(t, 8, cfg.DefaultHoursPerDay)
	assert.Equal(t, "1,2,3,4,5", cfg.DefaultWorkDays)
	assert.Empty(t, cfg.DatabasePath)
}

func TestResolveDatabasePath_EnvWins(t *testing.T) {
	t.Setenv("ATELIER_DB", "/tmp/override.sqlite")
	cfg := DefaultConfig()
	cfg.DatabasePath = "/var/lib/atelier.sqlite"

	path, err := cfg.ResolveDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.sqlite", path)
}

func TestResolveDatabasePath_ConfigValue(t *testing.T) {
	t.Setenv("ATELIER_DB", "")
	cfg := DefaultConfig()
	cfg.DatabasePath = "/var/lib/atelier.sqlite"

	path, err := cfg.ResolveDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/atelier.sqlite", path)
}

func TestResolveDatabasePath_DefaultUnderAtelierDir(t *testing.T) {
	t.Setenv("ATELIER_DB", "")
	cfg := DefaultConfig()

	path, err := cfg.ResolveDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("db", "atelier.sqlite"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
