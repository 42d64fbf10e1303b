package resource_scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeimages/resfinder/resource_scanner/models"
)

func TestClassify(t *testing.T) {
	entries := map[string]*models.ResourceEntry{
		"icon":       {Key: "icon", RelativePath: "b/icon.png", SizeBytes: 10},
		"icon_tag_1": {Key: "icon_tag_1", RelativePath: "a/icon_tag_1.png", SizeBytes: 20},
		"orphan":     {Key: "orphan", RelativePath: "c/orphan.png", SizeBytes: 30},
		"zombie":     {Key: "zombie", RelativePath: "a/zombie.png", SizeBytes: 40},
	}
	usage := NewUsageSet([]string{"icon", "icon_tag_%d"}, nil)
	patterns := defaultPatterns(t)

	report := Classify(entries, usage, patterns, true)

	require.Len(t, report.Unused, 2)
	assert.Equal(t, "a/zombie.png", report.Unused[0].RelativePath)
	assert.Equal(t, "c/orphan.png", report.Unused[1].RelativePath)
	assert.Equal(t, int64(70), report.UnusedBytes)

	require.Len(t, report.Used, 2)
	assert.Equal(t, "a/icon_tag_1.png", report.Used[0].Entry.RelativePath)
	assert.Equal(t, models.MatchSimilar, report.Used[0].Match)
	assert.Equal(t, models.MatchExact, report.Used[1].Match)

	unused, bytes := FindUnused(entries, usage, patterns, false)
	assert.Len(t, unused, 3, "without similar matching the templated name is unused")
	assert.Equal(t, int64(90), bytes)

	used := FindUsed(entries, usage, patterns, false)
	require.Len(t, used, 1)
	assert.Equal(t, "icon", used[0].Entry.Key)
}

func TestClassify_EmptyInputs(t *testing.T) {
	report := Classify(nil, nil, nil, true)
	assert.NotNil(t, report.Unused)
	assert.NotNil(t, report.Used)
	assert.Empty(t, report.Unused)
	assert.Equal(t, int64(0), report.UnusedBytes)

	assert.Equal(t, models.MatchNone, MatchResource(nil, nil, nil, true))
}

func TestClassify_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Resources/icon@2x.png", "1")
	writeFile(t, root, "Resources/icon@3x.png", "22")
	writeFile(t, root, "Resources/star_1.png", "1")
	writeFile(t, root, "Resources/star_2.png", "1")
	writeFile(t, root, "Resources/legacy.png", "4444")
	writeFile(t, root, "Assets.xcassets/Banner.imageset/banner.png", "1")
	writeFile(t, root, "Sources/Main.swift", `
		let icon = UIImage(named: "icon")
		let star = UIImage(named: "star_\(rating)")
		let banner = UIImage(named: "Banner")
	`)

	ctx := context.Background()
	opts := testOptions(root)

	catalog := NewCatalog(nil)
	collector := NewCollector(nil, nil)
	require.NoError(t, catalog.Run(ctx, opts))
	require.NoError(t, collector.Run(ctx, opts))

	unused, size := FindUnused(catalog.Entries(), collector.Usage(), defaultPatterns(t), true)
	require.Len(t, unused, 1)
	assert.Equal(t, "Resources/legacy.png", unused[0].RelativePath)
	assert.Equal(t, int64(4), size)
}
