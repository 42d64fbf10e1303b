package utils

import (
	"io/fs"
	"os"
	"path/filepath"
)

// PathSize returns the size of a file, or the recursive size of all regular
// files below a directory. Symlinks inside a directory are not followed.
func PathSize(path string) (size int64, isDir bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, err
	}
	if !info.IsDir() {
		return info.Size(), false, nil
	}
	return FolderSize(path), true, nil
}

// FolderSize sums the sizes of the regular files under path. Entries that
// cannot be read are left out of the total. Unlike Walk it never follows
// symlinks, so a bundle linking elsewhere is not counted twice.
func FolderSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip the unreadable part of the tree and keep counting
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
