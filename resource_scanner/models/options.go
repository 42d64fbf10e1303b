package models

// ScanOptions is the input of one scan run. Catalog runs read
// ResourceSuffixes; usage runs read FileSuffixes and use ResourceSuffixes to
// normalize the strings they find.
type ScanOptions struct {
	ProjectPath      string
	ExcludeFolders   []string
	ResourceSuffixes []string
	FileSuffixes     []string
	RespectGitignore bool
	// MaxFileSize skips source files larger than this many bytes; 0 means no limit
	MaxFileSize int64
}
