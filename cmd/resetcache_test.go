package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeimages/resfinder/resource_scanner"
)

func cachedDependencies(t *testing.T) (*RootDependencies, string) {
	t.Helper()
	root := t.TempDir()
	source := writeProjectFile(t, root, "a.m", `@"icon"`)

	cache, err := resource_scanner.NewCacheManager(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	require.NoError(t, cache.StoreTokens(source, []string{"icon"}))

	deps := testDependencies(t, root)
	deps.Cache = cache
	return deps, source
}

func TestResetCache_Disabled(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, handleResetCacheCommand(testCommand(&out), testDependencies(t, t.TempDir()), true, false))
	assert.Contains(t, out.String(), "Cache is disabled")
}

func TestResetCache_Stats(t *testing.T) {
	deps, source := cachedDependencies(t)

	var out bytes.Buffer
	require.NoError(t, handleResetCacheCommand(testCommand(&out), deps, false, true))

	assert.Contains(t, out.String(), "Cached Files: 1")
	_, ok := deps.Cache.LoadTokens(source)
	assert.True(t, ok, "stats leave the cache alone")
}

func TestResetCache_Declined(t *testing.T) {
	deps, source := cachedDependencies(t)

	var out bytes.Buffer
	cmd := testCommand(&out)
	cmd.SetIn(strings.NewReader("n\n"))
	require.NoError(t, handleResetCacheCommand(cmd, deps, false, false))

	assert.Contains(t, out.String(), "Cache reset cancelled.")
	_, ok := deps.Cache.LoadTokens(source)
	assert.True(t, ok)
}

func TestResetCache_Confirmed(t *testing.T) {
	deps, source := cachedDependencies(t)

	var out bytes.Buffer
	cmd := testCommand(&out)
	cmd.SetIn(strings.NewReader("yes\n"))
	require.NoError(t, handleResetCacheCommand(cmd, deps, false, false))

	assert.Contains(t, out.String(), "successfully reset")
	_, ok := deps.Cache.LoadTokens(source)
	assert.False(t, ok)
}
