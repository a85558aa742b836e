package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaderkit/ipl"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultToolConfig(), cfg)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iplconv.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_dir = "custom-in"
lod_output = " lods.txt "
`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-in", cfg.InputDir)
	assert.Equal(t, "lods.txt", cfg.LodOutput)
	assert.Equal(t, defaultToolConfig().OutputDir, cfg.OutputDir)
	assert.Equal(t, defaultToolConfig().WorldDir, cfg.WorldDir)
}

func TestLoadConfigInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir = ["), 0644))

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestLoadModelTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[model]]
id = 3458
name = "airoads01"

[[model]]
id = 4500
name = "lodtower"
`), 0644))

	table, err := loadModelTable(path)
	require.NoError(t, err)
	assert.Equal(t, "airoads01", table.ModelName(3458))
	assert.Equal(t, "lodtower", table.ModelName(4500))
	assert.Equal(t, ipl.UnknownModelName, table.ModelName(9999))
}

func TestLoadModelTableEmptyPath(t *testing.T) {
	table, err := loadModelTable("")
	require.NoError(t, err)
	assert.Equal(t, ipl.UnknownModelName, table.ModelName(1))
}
