package resource_scanner

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/yeimages/resfinder/resource_scanner/models"
	"github.com/yeimages/resfinder/utils"
)

// Reference is one source line that names a resource.
type Reference struct {
	RelativePath string `json:"relative_path" yaml:"relative_path"`
	Line         int    `json:"line" yaml:"line"`
	Text         string `json:"text" yaml:"text"`
}

// FindReferences walks the source files of a project and returns every line
// whose extracted tokens normalize to name. Files are read fresh; the token
// cache is not consulted because line numbers are needed.
func FindReferences(ctx context.Context, logger *pterm.Logger, opts models.ScanOptions, name string) ([]Reference, error) {
	if logger == nil {
		logger = utils.NopLogger()
	}

	root, err := resolveRoot(opts.ProjectPath)
	if err != nil {
		return nil, err
	}

	resourceSuffixes := utils.NormalizeSuffixes(opts.ResourceSuffixes)
	fileSuffixes := utils.NormalizeSuffixes(opts.FileSuffixes)
	target := utils.NormalizeToken(name, resourceSuffixes)
	if target == "" {
		return nil, nil
	}

	excluder, err := utils.NewExcluder(root, opts.ExcludeFolders, opts.RespectGitignore)
	if err != nil {
		logger.Warn("ignoring .gitignore", logger.Args("path", root, "error", err))
	}

	var references []Reference
	walkOpts := utils.WalkOptions{Excluder: excluder}

	err = utils.Walk(ctx, root, walkOpts, func(path string, info fs.FileInfo) error {
		if info.IsDir() {
			if utils.MatchSuffix(info.Name(), resourceSuffixes) != "" {
				return filepath.SkipDir
			}
			return nil
		}
		if utils.MatchSuffix(info.Name(), fileSuffixes) == "" {
			return nil
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Debug("skipping source file", logger.Args("path", path, "error", err))
			return nil
		}
		text, err := utils.DecodeText(content)
		if err != nil {
			return nil
		}

		relativePath := utils.RelativePath(path, root)
		scanner := bufio.NewScanner(strings.NewReader(text))
		scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
		lineNumber := 0
		for scanner.Scan() {
			lineNumber++
			line := scanner.Text()
			if !strings.Contains(line, target) {
				continue
			}
			for _, token := range ExtractTokens(info.Name(), line) {
				if utils.NormalizeToken(token, resourceSuffixes) == target {
					references = append(references, Reference{
						RelativePath: relativePath,
						Line:         lineNumber,
						Text:         strings.TrimRight(line, "\r"),
					})
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return references, nil
}
