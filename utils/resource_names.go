package utils

import (
	"path/filepath"
	"strings"
)

// scaleQualifiers are the density and device markers that make several files
// on disk the same logical resource.
var scaleQualifiers = []string{"@1x", "@2x", "@3x", "~iphone", "~ipad"}

// imageExtensions lists the file extensions we can show a preview for.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// NormalizeSuffixes lower-cases the suffixes and makes sure each one starts
// with a dot, so "PNG", "png" and ".png" all mean the same thing.
func NormalizeSuffixes(suffixes []string) []string {
	normalized := make([]string, 0, len(suffixes))
	seen := make(map[string]bool, len(suffixes))
	for _, suffix := range suffixes {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix == "" {
			continue
		}
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		if seen[suffix] {
			continue
		}
		seen[suffix] = true
		normalized = append(normalized, suffix)
	}
	return normalized
}

// MatchSuffix returns the longest normalized suffix that name ends with, or ""
// when none matches. A name made only of the suffix does not match.
func MatchSuffix(name string, suffixes []string) string {
	lower := strings.ToLower(name)
	matched := ""
	for _, suffix := range suffixes {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) && len(suffix) > len(matched) {
			matched = suffix
		}
	}
	return matched
}

// StripResourceSuffix turns a file name into its catalog key: the matching
// resource suffix is removed, then any trailing scale qualifiers.
//
//	icon@2x.png     -> icon
//	icon@3x~ipad.png -> icon
//	Logo.imageset   -> Logo
func StripResourceSuffix(name string, suffixes []string) string {
	key := name
	if suffix := MatchSuffix(key, suffixes); suffix != "" {
		key = key[:len(key)-len(suffix)]
	}
	for {
		trimmed := key
		for _, qualifier := range scaleQualifiers {
			trimmed = strings.TrimSuffix(trimmed, qualifier)
		}
		if trimmed == key || trimmed == "" {
			return key
		}
		key = trimmed
	}
}

// NormalizeToken maps a string found in source code onto the catalog key
// space: only the last path component is kept and the resource suffix is
// stripped the same way StripResourceSuffix does for file names.
func NormalizeToken(token string, suffixes []string) string {
	token = strings.TrimSpace(token)
	if i := strings.LastIndex(token, "/"); i >= 0 {
		token = token[i+1:]
	}
	if token == "" {
		return ""
	}
	return StripResourceSuffix(token, suffixes)
}

// IsImageName reports whether the file name has an extension we can decode.
func IsImageName(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// RelativePath returns fullPath relative to projectPath with forward slashes.
// If the two paths are unrelated, fullPath is returned unchanged.
func RelativePath(fullPath string, projectPath string) string {
	rel, err := filepath.Rel(projectPath, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(fullPath)
	}
	return filepath.ToSlash(rel)
}
