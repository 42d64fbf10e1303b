package resource_scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/yeimages/resfinder/resource_scanner/contracts"
	"github.com/yeimages/resfinder/resource_scanner/models"
	"github.com/yeimages/resfinder/utils"
)

// Catalog builds the mapping from resource key to resource entry for a
// project. Runs follow cancel-and-restart: starting a run cancels the one in
// flight, and readers only ever see a complete result.
type Catalog struct {
	logger *pterm.Logger
	guard  runGuard

	mu      sync.RWMutex
	entries map[string]*models.ResourceEntry
	stats   models.ScanStats
}

var _ contracts.ICatalogBuilder = (*Catalog)(nil)

// NewCatalog creates an empty catalog. A nil logger disables logging.
func NewCatalog(logger *pterm.Logger) *Catalog {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Catalog{
		logger:  logger,
		entries: make(map[string]*models.ResourceEntry),
	}
}

// Start runs a catalog scan in the background. The returned channel yields
// exactly one value, nil once the new catalog is published, and is then closed.
func (c *Catalog) Start(ctx context.Context, opts models.ScanOptions) <-chan error {
	runCtx, gen, cancel := c.guard.begin(ctx)
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.run(runCtx, gen, cancel, opts)
	}()
	return done
}

// Run scans synchronously and publishes the result.
func (c *Catalog) Run(ctx context.Context, opts models.ScanOptions) error {
	runCtx, gen, cancel := c.guard.begin(ctx)
	return c.run(runCtx, gen, cancel, opts)
}

// Reset clears the catalog and discards the result of any run in flight.
func (c *Catalog) Reset() {
	c.guard.invalidate(func() {
		c.publish(make(map[string]*models.ResourceEntry), models.ScanStats{})
	})
}

// Entries returns a copy of the key to entry mapping.
func (c *Catalog) Entries() map[string]*models.ResourceEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make(map[string]*models.ResourceEntry, len(c.entries))
	for key, entry := range c.entries {
		entries[key] = entry
	}
	return entries
}

// Lookup returns the entry cataloged under key.
func (c *Catalog) Lookup(key string) (*models.ResourceEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Len returns the number of cataloged resources.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the counters of the last published run.
func (c *Catalog) Stats() models.ScanStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *Catalog) publish(entries map[string]*models.ResourceEntry, stats models.ScanStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.stats = stats
}

func (c *Catalog) run(ctx context.Context, gen uint64, cancel context.CancelFunc, opts models.ScanOptions) error {
	defer cancel()

	startedAt := time.Now()
	stats := models.ScanStats{ScanID: uuid.NewString()}
	logger := c.logger

	root, err := resolveRoot(opts.ProjectPath)
	if err != nil {
		logger.Warn("resource scan aborted", logger.Args("scan_id", stats.ScanID, "error", err))
		if !c.guard.finish(gen, func() { c.publish(make(map[string]*models.ResourceEntry), stats) }) {
			return ErrScanSuperseded
		}
		return err
	}

	suffixes := utils.NormalizeSuffixes(opts.ResourceSuffixes)
	excluder, err := utils.NewExcluder(root, opts.ExcludeFolders, opts.RespectGitignore)
	if err != nil {
		logger.Warn("ignoring .gitignore", logger.Args("path", root, "error", err))
	}

	logger.Debug("resource scan started", logger.Args(
		"scan_id", stats.ScanID,
		"root", root,
		"suffixes", suffixes,
		"exclude", opts.ExcludeFolders,
	))

	entries := make(map[string]*models.ResourceEntry)

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
		} else {
			stats.Files++
		}

		suffix := utils.MatchSuffix(info.Name(), suffixes)
		if suffix == "" {
			return nil
		}

		entry := &models.ResourceEntry{
			Name:         info.Name(),
			Key:          utils.StripResourceSuffix(info.Name(), suffixes),
			FullPath:     path,
			RelativePath: utils.RelativePath(path, root),
			IsDir:        info.IsDir(),
			SizeBytes:    info.Size(),
		}
		if entry.IsDir {
			entry.SizeBytes = utils.FolderSize(path)
		}

		if previous, exists := entries[entry.Key]; exists {
			stats.Collisions++
			logger.Debug("resource key collision, keeping the later entry", logger.Args(
				"key", entry.Key,
				"previous", previous.RelativePath,
				"current", entry.RelativePath,
			))
		}
		entries[entry.Key] = entry

		// A bundle directory is a leaf resource
		if entry.IsDir {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		if !c.guard.current(gen) {
			return ErrScanSuperseded
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Info("resource scan cancelled", logger.Args("scan_id", stats.ScanID))
		}
		return err
	}

	if !c.guard.finish(gen, func() { c.publish(entries, stats) }) {
		return ErrScanSuperseded
	}

	logger.Info("resource catalog ready", logger.Args(
		"scan_id", stats.ScanID,
		"resources", len(entries),
		"skipped", stats.Skipped,
		"collisions", stats.Collisions,
		"elapsed", time.Since(startedAt).Round(time.Millisecond),
	))
	return nil
}
