package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "uniprot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenFieldsAbsent(t *testing.T) {
	path := writeConfig(t, ``)

	o, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, o.WorkerCount)
	require.Equal(t, 0, o.ChannelCapacity)
	require.True(t, o.InternShortStrings)
	require.False(t, o.ExposeURLType)
}

func TestLoad_AllFieldsSet(t *testing.T) {
	path := writeConfig(t, `
worker_count = 8
channel_capacity = 32
intern_short_strings = false
expose_url_type = true
`)

	o, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, o.WorkerCount)
	require.Equal(t, 32, o.ChannelCapacity)
	require.False(t, o.InternShortStrings)
	require.True(t, o.ExposeURLType)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func TestLoad_MalformedTomlIsError(t *testing.T) {
	path := writeConfig(t, `worker_count = "not a number"`)
	_, err := Load(path)
	require.Error(t, err)
}
