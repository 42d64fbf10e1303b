package resource_scanner

import (
	"fmt"
	"regexp"

	"github.com/yeimages/resfinder/utils"
)

// DefaultSimilarPatterns recognizes names with exactly one run of digits,
// such as icon_tag_1 or loading3_bg. The digits are the variable part.
var DefaultSimilarPatterns = []string{`^\D*?(\d+)\D*$`}

// derivedPlaceholders are tried between the constant prefix and suffix of a
// name to build the format string a developer would most likely have written.
var derivedPlaceholders = []string{"%d", "%i", "%u", "%ld", "%lu", "%lld", "%zd", "%zu", "%@", "%s"}

// CompilePatterns compiles the configured similar-name patterns. The first
// capture group of a pattern marks the variable part of a name; without a
// group the whole match is the variable part.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid similar-name pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// MatchSimilar reports whether name, which is not referenced verbatim, is
// referenced through a naming template. For the first pattern that matches,
// the name is split into constant prefix, variable part and constant suffix,
// and the usage set is searched for
//
//   - a derived template such as prefix+"%d"+suffix,
//   - a stored template (a string with placeholders) matching the whole name,
//   - a concatenation fragment equal to the constant side when the variable
//     part sits at the start or the end of the name.
//
// Patterns that do not match the name are ignored, so a name matching none of
// them is never similarly used.
func MatchSimilar(name string, usage *UsageSet, patterns []*regexp.Regexp) bool {
	if name == "" || usage.Len() == 0 {
		return false
	}

	for _, pattern := range patterns {
		if pattern == nil {
			continue
		}
		prefix, suffix, ok := splitVariable(pattern, name)
		if !ok {
			continue
		}

		for _, placeholder := range derivedPlaceholders {
			if usage.Contains(prefix + placeholder + suffix) {
				return true
			}
		}

		if usage.matchesTemplate(name) {
			return true
		}

		if suffix == "" && prefix != "" && usage.Contains(prefix) {
			return true
		}
		if prefix == "" && suffix != "" && usage.Contains(suffix) {
			return true
		}
	}

	return false
}

// splitVariable returns the constant text around the variable part that
// pattern finds in name.
func splitVariable(pattern *regexp.Regexp, name string) (prefix string, suffix string, ok bool) {
	loc := pattern.FindStringSubmatchIndex(name)
	if loc == nil {
		return "", "", false
	}

	start, end := loc[0], loc[1]
	if len(loc) >= 4 && loc[2] >= 0 {
		start, end = loc[2], loc[3]
	}
	if start == end {
		return "", "", false
	}
	return name[:start], name[end:], true
}

// stripSuffix is the key derivation shared by both scanners.
func stripSuffix(name string, resourceSuffixes []string) string {
	return utils.StripResourceSuffix(name, resourceSuffixes)
}
