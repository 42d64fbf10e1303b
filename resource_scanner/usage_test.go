package resource_scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestCollector_ExcludedFolderScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "images/icon.png", "png")
	writeFile(t, root, "images/@exclude/unused.png", "png")
	writeFile(t, root, "app.txt", `load("icon")`)

	opts := testOptions(root)
	opts.ExcludeFolders = []string{"@exclude"}

	collector := NewCollector(nil, nil)
	require.NoError(t, <-collector.Start(context.Background(), opts))

	assert.True(t, collector.ContainsResourceName("icon"))
	assert.True(t, collector.ContainsResourceName("icon.png"))
	assert.True(t, collector.ContainsResourceName("icon@2x.png"))
	assert.False(t, collector.ContainsResourceName("unused"))
	assert.Equal(t, []string{"icon"}, collector.Strings())
}

func TestCollector_NormalizesTokens(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Sources/Home.m", `
		self.header.image = [UIImage imageNamed:@"images/header_bg.png"];
		self.badge.image = [UIImage imageNamed:@"  badge@2x  "];
		NSString *empty = @"";
	`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.True(t, collector.ContainsResourceName("header_bg"))
	assert.True(t, collector.ContainsResourceName("badge"))
	assert.NotContains(t, collector.Strings(), "")
	assert.Equal(t, 2, collector.Len())
}

func TestCollector_OnlyAcceptedSuffixes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.m", `@"from_objc"`)
	writeFile(t, root, "README.md", `"from_readme"`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.True(t, collector.ContainsResourceName("from_objc"))
	assert.False(t, collector.ContainsResourceName("from_readme"))
	assert.Equal(t, 1, collector.Stats().Files)
}

func TestCollector_InterfaceBuilderFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Main.storyboard", `<?xml version="1.0" encoding="UTF-8"?>
<document>
  <imageView image="splash_logo" id="abc"/>
  <button><state key="normal" image="btn_normal"/></button>
  <resources>
    <image name="splash_logo" width="100" height="100"/>
  </resources>
</document>`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.True(t, collector.ContainsResourceName("splash_logo"))
	assert.True(t, collector.ContainsResourceName("btn_normal"))
	assert.False(t, collector.ContainsResourceName("UTF-8"), "only image attributes count in Interface Builder files")
}

func TestCollector_SkipsBundleContents(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Assets.xcassets/Logo.imageset/Contents.json", `{"images":[{"filename":"logo_file.png"}]}`)
	writeFile(t, root, "config.json", `{"icon":"settings_icon"}`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.False(t, collector.ContainsResourceName("logo_file"), "bundle metadata is not a reference")
	assert.True(t, collector.ContainsResourceName("settings_icon"))
}

func TestCollector_BinaryAndUndecodableFilesAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "binary.m", "\"hidden\"\x00\x01\x02")
	writeFile(t, root, "latin1.m", "\"caf\xe9\"")
	writeFile(t, root, "good.m", `@"visible"`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.False(t, collector.ContainsResourceName("hidden"))
	assert.True(t, collector.ContainsResourceName("visible"))
	assert.Equal(t, 2, collector.Stats().Undecodable)
	assert.Equal(t, 3, collector.Stats().Files)
}

func TestCollector_DecodesUTF16WithBOM(t *testing.T) {
	root := t.TempDir()

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	content, err := encoder.String(`"localized_banner" = "Banner";`)
	require.NoError(t, err)
	writeFile(t, root, "Localizable.strings", content)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.True(t, collector.ContainsResourceName("localized_banner"))
	assert.Equal(t, 0, collector.Stats().Undecodable)
}

func TestCollector_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.m", `@"small"`)
	writeFile(t, root, "large.m", `@"large_one_with_a_long_name"`)

	opts := testOptions(root)
	opts.MaxFileSize = 10

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), opts))

	assert.True(t, collector.ContainsResourceName("small"))
	assert.False(t, collector.ContainsResourceName("large_one_with_a_long_name"))
	assert.Equal(t, 1, collector.Stats().TooLarge)
}

func TestCollector_SimilarNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Tags.m", `
		NSString *name = [NSString stringWithFormat:@"icon_tag_%d", index];
		NSString *frame = [@"loading_" stringByAppendingString:suffix];
	`)

	patterns, err := CompilePatterns(DefaultSimilarPatterns)
	require.NoError(t, err)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.False(t, collector.ContainsResourceName("icon_tag_1"))
	assert.True(t, collector.ContainsSimilarResourceName("icon_tag_1", patterns))
	assert.True(t, collector.ContainsSimilarResourceName("icon_tag_12@2x.png", patterns))
	assert.True(t, collector.ContainsSimilarResourceName("loading_3", patterns))
	assert.False(t, collector.ContainsSimilarResourceName("icon_other_1", patterns))
	assert.False(t, collector.ContainsSimilarResourceName("icon_tag", patterns), "no variable part")
}

func TestCollector_RestartReplacesInsteadOfMerging(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "one/a.m", `@"first"`)
	writeFile(t, root, "two/b.m", `@"second"`)

	collector := NewCollector(nil, nil)

	opts := testOptions(root)
	opts.ExcludeFolders = []string{"two"}
	require.NoError(t, collector.Run(context.Background(), opts))
	assert.Equal(t, []string{"first"}, collector.Strings())

	opts.ExcludeFolders = []string{"one"}
	require.NoError(t, collector.Run(context.Background(), opts))
	assert.Equal(t, []string{"second"}, collector.Strings())
}

func TestCollector_Reset(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.m", `@"icon_%d"`)

	patterns, err := CompilePatterns(DefaultSimilarPatterns)
	require.NoError(t, err)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))
	require.True(t, collector.ContainsSimilarResourceName("icon_1", patterns))

	collector.Reset()

	assert.Equal(t, 0, collector.Len())
	assert.False(t, collector.ContainsResourceName("icon_%d"))
	assert.False(t, collector.ContainsSimilarResourceName("icon_1", patterns))
}

func TestCollector_SupersededRunNeverPublishes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.m", `@"stale"`)

	collector := NewCollector(nil, nil)
	firstCtx, firstGen, firstCancel := collector.guard.begin(context.Background())
	_, _, secondCancel := collector.guard.begin(context.Background())
	defer secondCancel()

	err := collector.run(firstCtx, firstGen, firstCancel, testOptions(root))
	assert.ErrorIs(t, err, ErrScanSuperseded)
	assert.Equal(t, 0, collector.Len())
}

func TestCollector_MissingRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.m", `@"icon"`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))
	require.Equal(t, 1, collector.Len())

	err := collector.Run(context.Background(), testOptions(filepath.Join(root, "nope")))
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Equal(t, 0, collector.Len())
}

func TestCollector_UnreadableFileIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	locked := writeFile(t, root, "locked.m", `@"secret"`)
	writeFile(t, root, "open.m", `@"public"`)
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0644) })

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.True(t, collector.ContainsResourceName("public"))
	assert.False(t, collector.ContainsResourceName("secret"))
	assert.Equal(t, 1, collector.Stats().Skipped)
}

func TestCollector_CharacterLiteralKeepsLaterStrings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.m", `if (c == '"') { img = [UIImage imageNamed:@"icon"]; }`)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), testOptions(root)))

	assert.True(t, collector.ContainsResourceName("icon"))
	assert.Equal(t, []string{"icon"}, collector.Strings())
}

func TestCollector_JavaScriptTemplateLiteral(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.js", "img.src = `icon_tag_${i}.png`;")

	patterns, err := CompilePatterns(DefaultSimilarPatterns)
	require.NoError(t, err)

	opts := testOptions(root)
	opts.FileSuffixes = append([]string{"js"}, testFileSuffixes...)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), opts))

	assert.Equal(t, []string{"icon_tag_${i}"}, collector.Strings())
	assert.True(t, collector.ContainsSimilarResourceName("icon_tag_1", patterns))
	assert.False(t, collector.ContainsSimilarResourceName("icon_other_1", patterns))
}

func TestCollector_XcodeAppIconSetting(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "App.xcodeproj/project.pbxproj", "\t\t\t\tASSETCATALOG_COMPILER_APPICON_NAME = AppIcon;\n")

	opts := testOptions(root)
	opts.FileSuffixes = append([]string{"pbxproj"}, testFileSuffixes...)

	collector := NewCollector(nil, nil)
	require.NoError(t, collector.Run(context.Background(), opts))

	assert.True(t, collector.ContainsResourceName("AppIcon.appiconset"))
}
