package resource_scanner

import (
	"path/filepath"
	"regexp"
	"strings"
)

// maxTokenLength drops literals that are obviously not resource names.
const maxTokenLength = 255

// extractionRulesVersion must change whenever extractionRules change, so that
// cached token lists from older rules are not reused.
const extractionRulesVersion = 2

var (
	doubleQuoted   = regexp.MustCompile(`"((?:[^"\\\r\n]|\\.)*)"`)
	singleQuoted   = regexp.MustCompile(`'((?:[^'\\\r\n]|\\.)*)'`)
	backtickQuoted = regexp.MustCompile("`((?:[^`\\\\]|\\\\.)*)`")

	// cQuoted consumes character literals such as '"' first, so they never
	// open a string; those matches leave the group empty.
	cQuoted = regexp.MustCompile(`'(?:\\.|[^'\\\r\n])'|@?"((?:[^"\\\r\n]|\\.)*)"`)

	// Interface Builder attributes
	ibImageAttr = regexp.MustCompile(`\b(?:image|imageName|highlightedImage|selectedImage|backgroundImage)\s*=\s*"([^"]+)"`)
	ibImageTag  = regexp.MustCompile(`<image\s+name="([^"]+)"`)

	swiftRImage  = regexp.MustCompile(`\bR\.image\.(\w+)`)
	androidRCode = regexp.MustCompile(`\bR\.(?:drawable|mipmap)\.(\w+)`)
	androidRXML  = regexp.MustCompile(`@(?:drawable|mipmap)/(\w+)`)

	cssURL      = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)
	htmlSrc     = regexp.MustCompile(`\bsrc\s*=\s*['"]?([^'"\s>]+)`)
	plistString = regexp.MustCompile(`<string>([^<]*)</string>`)

	// Xcode build settings naming asset catalog entries
	pbxprojAsset = regexp.MustCompile(`\bASSETCATALOG_COMPILER_(?:APPICON|LAUNCHIMAGE)_NAME\s*=\s*"?([^";\n]+?)"?\s*;`)
)

// extractionRules maps a lower-case file extension to the expressions that
// pull candidate resource names out of such a file. The first capture group
// of each expression is the candidate.
var extractionRules = map[string][]*regexp.Regexp{
	".m":          {cQuoted},
	".mm":         {cQuoted},
	".h":          {cQuoted},
	".c":          {cQuoted},
	".cc":         {cQuoted},
	".cpp":        {cQuoted},
	".swift":      {cQuoted, swiftRImage},
	".xib":        {ibImageAttr, ibImageTag},
	".storyboard": {ibImageAttr, ibImageTag},
	".html":       {doubleQuoted, singleQuoted, htmlSrc},
	".htm":        {doubleQuoted, singleQuoted, htmlSrc},
	".js":         {doubleQuoted, singleQuoted, backtickQuoted},
	".jsx":        {doubleQuoted, singleQuoted, backtickQuoted},
	".ts":         {doubleQuoted, singleQuoted, backtickQuoted},
	".tsx":        {doubleQuoted, singleQuoted, backtickQuoted},
	".vue":        {doubleQuoted, singleQuoted, backtickQuoted, htmlSrc},
	".css":        {cssURL},
	".scss":       {cssURL},
	".less":       {cssURL},
	".json":       {doubleQuoted},
	".plist":      {plistString, doubleQuoted},
	".strings":    {doubleQuoted},
	".java":       {cQuoted, androidRCode},
	".kt":         {cQuoted, androidRCode},
	".xml":        {doubleQuoted, androidRXML},
	".pbxproj":    {pbxprojAsset},
}

// defaultRules apply to accepted files with an extension not listed above.
var defaultRules = []*regexp.Regexp{doubleQuoted}

func rulesFor(fileName string) []*regexp.Regexp {
	if rules, ok := extractionRules[strings.ToLower(filepath.Ext(fileName))]; ok {
		return rules
	}
	return defaultRules
}

// ExtractTokens returns the distinct raw candidate strings in text, in the
// order they first appear. The file name selects the extraction rules.
func ExtractTokens(fileName string, text string) []string {
	seen := make(map[string]bool)
	var tokens []string

	for _, rule := range rulesFor(fileName) {
		for _, match := range rule.FindAllStringSubmatch(text, -1) {
			token := strings.TrimSpace(match[1])
			if token == "" || len(token) > maxTokenLength || seen[token] {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}
	}

	return tokens
}
