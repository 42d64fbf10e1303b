package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSize(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "Logo.imageset")
	require.NoError(t, os.MkdirAll(filepath.Join(bundle, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "a.png"), []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "nested", "b.png"), []byte("123"), 0644))

	size, isDir, err := PathSize(bundle)
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Equal(t, int64(8), size)

	size, isDir, err = PathSize(filepath.Join(bundle, "a.png"))
	require.NoError(t, err)
	assert.False(t, isDir)
	assert.Equal(t, int64(5), size)

	_, _, err = PathSize(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFolderSize_DoesNotFollowSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("12"), 0644))
	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	assert.Equal(t, int64(2), FolderSize(dir))
}
