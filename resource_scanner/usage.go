package resource_scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/yeimages/resfinder/resource_scanner/contracts"
	"github.com/yeimages/resfinder/resource_scanner/models"
	"github.com/yeimages/resfinder/utils"
)

// Collector gathers every string in a project's source files that could name
// a resource. It shares the run semantics of Catalog.
type Collector struct {
	logger *pterm.Logger
	cache  *CacheManager
	guard  runGuard

	mu    sync.RWMutex
	usage *UsageSet
	stats models.ScanStats
}

var _ contracts.IUsageCollector = (*Collector)(nil)

// NewCollector creates an empty collector. The cache is optional.
func NewCollector(logger *pterm.Logger, cache *CacheManager) *Collector {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Collector{
		logger: logger,
		cache:  cache,
		usage:  NewUsageSet(nil, nil),
	}
}

// Start runs a usage scan in the background. The returned channel yields
// exactly one value, nil once the new usage set is published, and is then closed.
func (c *Collector) Start(ctx context.Context, opts models.ScanOptions) <-chan error {
	runCtx, gen, cancel := c.guard.begin(ctx)
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.run(runCtx, gen, cancel, opts)
	}()
	return done
}

// Run scans synchronously and publishes the result.
func (c *Collector) Run(ctx context.Context, opts models.ScanOptions) error {
	runCtx, gen, cancel := c.guard.begin(ctx)
	return c.run(runCtx, gen, cancel, opts)
}

// Reset clears the usage set and discards the result of any run in flight.
func (c *Collector) Reset() {
	c.guard.invalidate(func() {
		c.publish(NewUsageSet(nil, nil), models.ScanStats{})
	})
}

// Usage returns the current usage set. It is immutable and safe to keep.
func (c *Collector) Usage() *UsageSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usage
}

// Strings returns the collected strings in sorted order.
func (c *Collector) Strings() []string {
	return c.Usage().Strings()
}

// Len returns the number of distinct collected strings.
func (c *Collector) Len() int {
	return c.Usage().Len()
}

// Stats returns the counters of the last published run.
func (c *Collector) Stats() models.ScanStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// ContainsResourceName reports whether name, after suffix stripping, was
// found verbatim in the source files.
func (c *Collector) ContainsResourceName(name string) bool {
	usage := c.Usage()
	if usage.Contains(name) {
		return true
	}
	return usage.Contains(usage.normalize(name))
}

// ContainsSimilarResourceName reports whether name is referenced through a
// naming template, e.g. icon_tag_1 through "icon_tag_%d". See MatchSimilar.
func (c *Collector) ContainsSimilarResourceName(name string, patterns []*regexp.Regexp) bool {
	usage := c.Usage()
	return MatchSimilar(usage.normalize(name), usage, patterns)
}

func (c *Collector) publish(usage *UsageSet, stats models.ScanStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usage = usage
	c.stats = stats
}

func (c *Collector) run(ctx context.Context, gen uint64, cancel context.CancelFunc, opts models.ScanOptions) error {
	defer cancel()

	startedAt := time.Now()
	stats := models.ScanStats{ScanID: uuid.NewString()}
	logger := c.logger
	resourceSuffixes := utils.NormalizeSuffixes(opts.ResourceSuffixes)

	root, err := resolveRoot(opts.ProjectPath)
	if err != nil {
		logger.Warn("usage scan aborted", logger.Args("scan_id", stats.ScanID, "error", err))
		if !c.guard.finish(gen, func() { c.publish(NewUsageSet(nil, resourceSuffixes), stats) }) {
			return ErrScanSuperseded
		}
		return err
	}

	fileSuffixes := utils.NormalizeSuffixes(opts.FileSuffixes)
	excluder, err := utils.NewExcluder(root, opts.ExcludeFolders, opts.RespectGitignore)
	if err != nil {
		logger.Warn("ignoring .gitignore", logger.Args("path", root, "error", err))
	}

	logger.Debug("usage scan started", logger.Args(
		"scan_id", stats.ScanID,
		"root", root,
		"file_suffixes", fileSuffixes,
		"exclude", opts.ExcludeFolders,
	))

	var values []string

	walkOpts := utils.WalkOptions{
		Excluder: excluder,
		OnError: func(path string, err error) {
			stats.Skipped++
			logger.Debug("skipping unreadable entry", logger.Args("path", path, "error", err))
		},
	}

	err = utils.Walk(ctx, root, walkOpts, func(path string, info fs.FileInfo) error {
		if info.IsDir() {
			stats.Directories++
			// Bundle metadata such as Contents.json names the images inside
			// the bundle and must not count as a reference
			if utils.MatchSuffix(info.Name(), resourceSuffixes) != "" {
				return filepath.SkipDir
			}
			return nil
		}

		if utils.MatchSuffix(info.Name(), fileSuffixes) == "" {
			return nil
		}
		stats.Files++

		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			stats.TooLarge++
			logger.Debug("skipping large file", logger.Args("path", path, "size", info.Size()))
			return nil
		}

		tokens, cached, err := c.tokensForFile(path)
		if err != nil {
			if errors.Is(err, utils.ErrBinaryContent) || errors.Is(err, utils.ErrUndecodable) {
				stats.Undecodable++
			} else {
				stats.Skipped++
			}
			logger.Debug("skipping source file", logger.Args("path", path, "error", err))
			return nil
		}
		if cached {
			stats.CacheHits++
		}

		for _, token := range tokens {
			if value := utils.NormalizeToken(token, resourceSuffixes); value != "" {
				values = append(values, value)
			}
		}
		return nil
	})
	if err != nil {
		if !c.guard.current(gen) {
			return ErrScanSuperseded
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Info("usage scan cancelled", logger.Args("scan_id", stats.ScanID))
		}
		return err
	}

	usage := NewUsageSet(values, resourceSuffixes)
	if !c.guard.finish(gen, func() { c.publish(usage, stats) }) {
		return ErrScanSuperseded
	}

	logger.Info("usage strings ready", logger.Args(
		"scan_id", stats.ScanID,
		"strings", usage.Len(),
		"templates", len(usage.templates),
		"files", stats.Files,
		"skipped", stats.Skipped+stats.Undecodable,
		"elapsed", time.Since(startedAt).Round(time.Millisecond),
	))
	return nil
}

// tokensForFile returns the raw candidate strings of one source file, from
// the cache when the file is unchanged.
func (c *Collector) tokensForFile(path string) ([]string, bool, error) {
	if c.cache != nil {
		if tokens, found := c.cache.LoadTokens(path); found {
			return tokens, true, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := utils.DecodeText(content)
	if err != nil {
		return nil, false, err
	}

	tokens := ExtractTokens(filepath.Base(path), text)

	if c.cache != nil {
		if err := c.cache.StoreTokens(path, tokens); err != nil {
			c.logger.Debug("failed to cache tokens", c.logger.Args("path", path, "error", err))
		}
	}

	return tokens, false, nil
}
