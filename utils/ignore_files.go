package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// versionControlFolders are never scanned, whatever the configured exclusions are.
var versionControlFolders = []string{".git", ".svn", ".hg"}

// Excluder decides which parts of a project tree the scanners skip.
// Folder exclusion is by base name: a folder whose name is listed is skipped
// together with its whole subtree, wherever it appears.
type Excluder struct {
	root    string
	folders map[string]bool
	matcher gitignore.IgnoreMatcher
}

// NewExcluder builds an Excluder for root. When respectGitignore is set and
// root contains a .gitignore file, its patterns are applied as well.
// A .gitignore that cannot be parsed is reported as an error together with an
// Excluder that applies the folder names only.
func NewExcluder(root string, folders []string, respectGitignore bool) (*Excluder, error) {
	excluder := &Excluder{
		root:    root,
		folders: make(map[string]bool, len(folders)+len(versionControlFolders)),
	}
	for _, folder := range versionControlFolders {
		excluder.folders[folder] = true
	}
	for _, folder := range folders {
		// Accept "Pods/" or "/Pods" the same way as "Pods"
		folder = strings.Trim(strings.TrimSpace(folder), `/\`)
		if folder != "" {
			excluder.folders[folder] = true
		}
	}

	if !respectGitignore {
		return excluder, nil
	}

	gitIgnorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		if os.IsNotExist(err) {
			return excluder, nil
		}
		return excluder, fmt.Errorf("error checking .gitignore: %w", err)
	}

	matcher, err := gitignore.NewGitIgnore(gitIgnorePath, root)
	if err != nil {
		return excluder, fmt.Errorf("failed to parse .gitignore: %w", err)
	}
	excluder.matcher = matcher
	return excluder, nil
}

// IsExcludedFolder reports whether a folder with this base name is excluded.
func (e *Excluder) IsExcludedFolder(name string) bool {
	if e == nil {
		return false
	}
	return e.folders[name]
}

// SkipDir reports whether the directory at path must not be entered.
func (e *Excluder) SkipDir(path string, name string) bool {
	if e == nil {
		return false
	}
	if e.folders[name] {
		return true
	}
	return e.matcher != nil && e.matcher.Match(path, true)
}

// SkipFile reports whether the file at path is ignored by .gitignore.
// Folder names never exclude files.
func (e *Excluder) SkipFile(path string) bool {
	if e == nil || e.matcher == nil {
		return false
	}
	return e.matcher.Match(path, false)
}

// Folders returns the excluded folder names, including the built-in ones.
func (e *Excluder) Folders() []string {
	if e == nil {
		return nil
	}
	folders := make([]string, 0, len(e.folders))
	for folder := range e.folders {
		folders = append(folders, folder)
	}
	return folders
}
