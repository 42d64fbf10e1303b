package resource_scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeimages/resfinder/resource_scanner/models"
)

var (
	testResourceSuffixes = []string{"png", "jpg", "gif", "imageset", "appiconset", "bundle"}
	testFileSuffixes     = []string{"h", "m", "mm", "swift", "xib", "storyboard", "json", "txt", "plist", "strings"}
)

// writeFile creates root/rel with content, making parent directories.
func writeFile(t testing.TB, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// makeDir creates root/rel and its parents.
func makeDir(t testing.TB, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

func testOptions(root string) models.ScanOptions {
	return models.ScanOptions{
		ProjectPath:      root,
		ResourceSuffixes: testResourceSuffixes,
		FileSuffixes:     testFileSuffixes,
	}
}

func contextForTest(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
