package resource_scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrPathNotFound means the project root does not exist.
	ErrPathNotFound = errors.New("project path not found")
	// ErrPathUnreadable means the project root exists but cannot be accessed.
	ErrPathUnreadable = errors.New("project path unreadable")
	// ErrNotDirectory means the project root is not a directory.
	ErrNotDirectory = errors.New("project path is not a directory")
	// ErrScanSuperseded is returned by a run that was replaced by a newer
	// run or by Reset before it could publish its result.
	ErrScanSuperseded = errors.New("scan superseded")
)

// resolveRoot turns the project path into an absolute directory path and
// checks that it can be listed.
func resolveRoot(projectPath string) (string, error) {
	if projectPath == "" {
		return "", fmt.Errorf("empty path: %w", ErrPathNotFound)
	}

	root, err := filepath.Abs(projectPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", projectPath, ErrPathUnreadable)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", root, ErrPathNotFound)
		}
		return "", fmt.Errorf("%s: %w: %v", root, ErrPathUnreadable, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	dir, err := os.Open(root)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", root, ErrPathUnreadable, err)
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w: %v", root, ErrPathUnreadable, err)
	}

	return root, nil
}
