package alirconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warnings_as_errors: true\nmax_hint_distance: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.WarningsAsErrors)
	assert.True(t, cfg.EnableHints) // untouched field keeps its default
	assert.Equal(t, 4, cfg.MaxHintDistance)
}

func TestLoadRejectsNegativeHintDistance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_hint_distance: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
