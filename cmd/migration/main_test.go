package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	assert.ErrorContains(t, err, "> 0")

	_, err = parseSteps([]string{"many"})
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	version, err := parseVersion([]string{"1771776034"})
	require.NoError(t, err)
	assert.Equal(t, 1771776034, version)

	_, err = parseVersion(nil)
	assert.Error(t, err)

	_, err = parseVersion([]string{"-1"})
	assert.Error(t, err)
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	file := filepath.Join(dir, "not-a-dir.sql")
	require.NoError(t, os.WriteFile(file, []byte("--"), 0o600))
	t.Chdir(dir)
	_, err = resolveMigrationsDir(file)
	assert.Error(t, err)
}
