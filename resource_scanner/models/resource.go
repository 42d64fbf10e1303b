package models

// ResourceEntry is one image file or image bundle found in a project.
type ResourceEntry struct {
	// Name is the base name on disk, e.g. "icon@2x.png"
	Name string `json:"name" yaml:"name"`
	// Key is the catalog key: Name without resource suffix and scale qualifiers
	Key          string `json:"key" yaml:"key"`
	FullPath     string `json:"full_path" yaml:"full_path"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
	IsDir        bool   `json:"is_dir" yaml:"is_dir"`
	// SizeBytes is the file size, or the recursive total for a bundle directory
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`
}

// ScanStats counts what a scan run saw and what it had to leave out.
type ScanStats struct {
	ScanID      string `json:"scan_id" yaml:"scan_id"`
	Directories int    `json:"directories" yaml:"directories"`
	Files       int    `json:"files" yaml:"files"`
	// Skipped counts entries that could not be read
	Skipped int `json:"skipped" yaml:"skipped"`
	// Undecodable counts binary or non-text source files
	Undecodable int `json:"undecodable" yaml:"undecodable"`
	// TooLarge counts source files above the configured size limit
	TooLarge int `json:"too_large" yaml:"too_large"`
	// Collisions counts catalog keys that were overwritten by a later file
	Collisions int `json:"collisions" yaml:"collisions"`
	CacheHits  int `json:"cache_hits" yaml:"cache_hits"`
}
