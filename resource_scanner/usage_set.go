package resource_scanner

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// placeholderPattern finds the runtime-substituted parts of a string literal:
// printf verbs (%d, %02d, %@, %ld, %1$s), {0} and {} style holes, Swift
// interpolation \(expr) and JavaScript ${expr}.
var placeholderPattern = regexp.MustCompile(`%(?:\d+\$)?[-+#0]*\d*(?:\.\d+)?(?:hh|h|ll|l|q|z|t|j|L)?[@dDiuUxXoOfFeEgGcCsSp]|\{\d*\}|\\\([^)]*\)|\$\{[^}]*\}`)

// nameTemplate is a usage string with placeholders, compiled so that it
// matches whole resource names.
type nameTemplate struct {
	source string
	re     *regexp.Regexp
}

// compileTemplate returns the template for s, or false when s has no
// placeholder or no letter or digit outside its placeholders ("%@" or
// "%d-%d" would match far too many names).
func compileTemplate(s string) (*nameTemplate, bool) {
	locs := placeholderPattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil, false
	}

	var b strings.Builder
	b.WriteString("^")
	literal := false
	last := 0
	for _, loc := range locs {
		part := s[last:loc[0]]
		literal = literal || hasAlphanumeric(part)
		b.WriteString(regexp.QuoteMeta(part))
		b.WriteString("(.+?)")
		last = loc[1]
	}
	tail := s[last:]
	literal = literal || hasAlphanumeric(tail)
	b.WriteString(regexp.QuoteMeta(tail))
	b.WriteString("$")

	if !literal {
		return nil, false
	}
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, false
	}
	return &nameTemplate{source: s, re: re}, true
}

func hasAlphanumeric(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// UsageSet is the published result of a usage scan: the distinct strings
// found in source files plus the subset of them that are format templates.
// A UsageSet is never modified after it is built.
type UsageSet struct {
	values           map[string]struct{}
	templates        []*nameTemplate
	resourceSuffixes []string
}

// NewUsageSet builds a set from already normalized strings. resourceSuffixes
// are remembered so lookups can normalize names the same way.
func NewUsageSet(values []string, resourceSuffixes []string) *UsageSet {
	set := &UsageSet{
		values:           make(map[string]struct{}, len(values)),
		resourceSuffixes: resourceSuffixes,
	}
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, exists := set.values[value]; exists {
			continue
		}
		set.values[value] = struct{}{}
		if template, ok := compileTemplate(value); ok {
			set.templates = append(set.templates, template)
		}
	}
	sort.Slice(set.templates, func(i, j int) bool {
		return set.templates[i].source < set.templates[j].source
	})
	return set
}

// Contains reports exact membership.
func (u *UsageSet) Contains(value string) bool {
	if u == nil {
		return false
	}
	_, ok := u.values[value]
	return ok
}

// Len returns the number of distinct strings.
func (u *UsageSet) Len() int {
	if u == nil {
		return 0
	}
	return len(u.values)
}

// Strings returns the strings in sorted order.
func (u *UsageSet) Strings() []string {
	if u == nil {
		return nil
	}
	values := make([]string, 0, len(u.values))
	for value := range u.values {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Templates returns the strings that contain a format placeholder.
func (u *UsageSet) Templates() []string {
	if u == nil {
		return nil
	}
	sources := make([]string, 0, len(u.templates))
	for _, template := range u.templates {
		sources = append(sources, template.source)
	}
	return sources
}

// normalize maps a resource name onto the key space of the set.
func (u *UsageSet) normalize(name string) string {
	if u == nil {
		return name
	}
	return stripSuffix(name, u.resourceSuffixes)
}

// matchesTemplate reports whether a stored template matches the whole name.
func (u *UsageSet) matchesTemplate(name string) bool {
	if u == nil {
		return false
	}
	for _, template := range u.templates {
		if template.re.MatchString(name) {
			return true
		}
	}
	return false
}
