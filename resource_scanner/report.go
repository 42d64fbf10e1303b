package resource_scanner

import (
	"regexp"
	"sort"

	"github.com/yeimages/resfinder/resource_scanner/models"
)

// MatchResource tells whether entry is referenced by usage, exactly or, when
// useSimilar is set, through a naming template.
func MatchResource(entry *models.ResourceEntry, usage *UsageSet, patterns []*regexp.Regexp, useSimilar bool) models.MatchKind {
	if entry == nil {
		return models.MatchNone
	}
	if usage.Contains(entry.Key) {
		return models.MatchExact
	}
	if useSimilar && MatchSimilar(entry.Key, usage, patterns) {
		return models.MatchSimilar
	}
	return models.MatchNone
}

// Classify splits a catalog into used and unused resources. Both lists are
// sorted by relative path.
func Classify(entries map[string]*models.ResourceEntry, usage *UsageSet, patterns []*regexp.Regexp, useSimilar bool) models.UsageReport {
	report := models.UsageReport{
		Unused: []*models.ResourceEntry{},
		Used:   []models.UsedResource{},
	}

	for _, entry := range entries {
		kind := MatchResource(entry, usage, patterns, useSimilar)
		if kind == models.MatchNone {
			report.Unused = append(report.Unused, entry)
			report.UnusedBytes += entry.SizeBytes
			continue
		}
		report.Used = append(report.Used, models.UsedResource{Entry: entry, Match: kind})
	}

	sort.Slice(report.Unused, func(i, j int) bool {
		return report.Unused[i].RelativePath < report.Unused[j].RelativePath
	})
	sort.Slice(report.Used, func(i, j int) bool {
		return report.Used[i].Entry.RelativePath < report.Used[j].Entry.RelativePath
	})

	return report
}

// FindUnused returns the resources nothing refers to and their total size.
func FindUnused(entries map[string]*models.ResourceEntry, usage *UsageSet, patterns []*regexp.Regexp, useSimilar bool) ([]*models.ResourceEntry, int64) {
	report := Classify(entries, usage, patterns, useSimilar)
	return report.Unused, report.UnusedBytes
}

// FindUsed returns the referenced resources with the way they are referenced.
func FindUsed(entries map[string]*models.ResourceEntry, usage *UsageSet, patterns []*regexp.Regexp, useSimilar bool) []models.UsedResource {
	return Classify(entries, usage, patterns, useSimilar).Used
}
