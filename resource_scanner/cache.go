package resource_scanner

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/zeebo/xxh3"
)

const (
	cacheFileExt  = ".cache"
	cacheLockName = ".resfinder.lock"
)

// tokenEntry is what one cache file holds: the tokens of a source file and the
// file metadata they were extracted from.
type tokenEntry struct {
	Tokens       []string
	ModTime      time.Time
	Size         int64
	StoredAt     time.Time
	RulesVersion int
}

// tokenStore reads and writes token entries, one gob file per source file.
type tokenStore struct {
	dir   string
	mutex sync.RWMutex
	// lock serializes writers across resfinder processes sharing the directory
	lock *flock.Flock
}

// CacheManager keeps the tokens extracted from each source file between runs,
// so an unchanged file is not read and matched again.
type CacheManager struct {
	store       *tokenStore
	performance cacheCounters
}

// CacheUsage describes what the cache directory currently holds.
type CacheUsage struct {
	Dir       string
	Files     int
	TotalSize int64
}

// NewCacheManager opens the cache in cacheDir, creating it when needed, and
// prunes it with the default policy.
// If cacheDir is empty, it defaults to "resfinder" under the user cache directory.
func NewCacheManager(cacheDir string) (*CacheManager, error) {
	if cacheDir == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			cwd, cwdErr := os.Getwd()
			if cwdErr != nil {
				return nil, fmt.Errorf("failed to get current working directory: %w", cwdErr)
			}
			userCacheDir = filepath.Join(cwd, ".cache")
		}
		cacheDir = filepath.Join(userCacheDir, "resfinder")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cm := &CacheManager{
		store: &tokenStore{
			dir:  cacheDir,
			lock: flock.New(filepath.Join(cacheDir, cacheLockName)),
		},
	}
	cm.performance.reset()

	// A failed prune leaves a larger cache behind, nothing more.
	_, _ = cm.Prune(DefaultPrunePolicy)

	return cm, nil
}

// Dir returns the directory holding the cache files.
func (cm *CacheManager) Dir() string {
	return cm.store.dir
}

// LoadTokens returns the tokens stored for filePath, provided the file has not
// changed since and they were extracted with the current rules.
func (cm *CacheManager) LoadTokens(filePath string) ([]string, bool) {
	tokens, ok := cm.store.load(filePath)
	cm.performance.record(ok)
	return tokens, ok
}

// StoreTokens remembers the tokens extracted from filePath.
func (cm *CacheManager) StoreTokens(filePath string, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	return cm.store.save(filePath, tokens)
}

// Forget drops the entry of filePath, if any.
func (cm *CacheManager) Forget(filePath string) error {
	return cm.store.remove(filePath)
}

// Usage reports the number and total size of the cache files.
func (cm *CacheManager) Usage() (CacheUsage, error) {
	cm.store.mutex.RLock()
	defer cm.store.mutex.RUnlock()

	files, err := cm.store.files()
	if err != nil {
		return CacheUsage{}, fmt.Errorf("failed to read cache directory: %w", err)
	}

	usage := CacheUsage{Dir: cm.store.dir, Files: len(files)}
	for _, file := range files {
		usage.TotalSize += file.Size()
	}
	return usage, nil
}

// Clear removes every cache entry and resets the hit counters.
func (cm *CacheManager) Clear() error {
	cm.store.mutex.Lock()
	defer cm.store.mutex.Unlock()

	files, err := cm.store.files()
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	err = cm.store.withProcessLock(func() error {
		for _, file := range files {
			path := filepath.Join(cm.store.dir, file.Name())
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to delete cache file %s: %w", file.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cm.performance.reset()
	return nil
}

// PrunePolicy limits what the cache may keep. Zero fields are no limit.
type PrunePolicy struct {
	MaxAge   time.Duration
	MaxSize  int64
	MaxFiles int
	// DryRun reports what would be removed without removing it
	DryRun bool
}

// DefaultPrunePolicy is applied every time the cache is opened.
var DefaultPrunePolicy = PrunePolicy{
	MaxAge:   30 * 24 * time.Hour,
	MaxSize:  200 * 1024 * 1024,
	MaxFiles: 50000,
}

// PruneResult tells what a prune removed, or would remove on a dry run.
type PruneResult struct {
	Examined   int
	Removed    int
	FreedBytes int64
	ByAge      int
	BySize     int
	ByCount    int
}

// Prune removes entries older than MaxAge, then the oldest entries until the
// cache fits MaxSize and MaxFiles.
func (cm *CacheManager) Prune(policy PrunePolicy) (PruneResult, error) {
	cm.store.mutex.Lock()
	defer cm.store.mutex.Unlock()

	files, err := cm.store.files()
	if err != nil {
		return PruneResult{}, fmt.Errorf("failed to read cache directory: %w", err)
	}

	type candidate struct {
		path     string
		size     int64
		storedAt time.Time
	}

	candidates := make([]candidate, 0, len(files))
	var totalSize int64
	for _, file := range files {
		path := filepath.Join(cm.store.dir, file.Name())
		storedAt := file.ModTime()
		if entry, err := readTokenEntry(path); err == nil {
			storedAt = entry.StoredAt
		}
		candidates = append(candidates, candidate{path: path, size: file.Size(), storedAt: storedAt})
		totalSize += file.Size()
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].storedAt.Before(candidates[j].storedAt)
	})

	result := PruneResult{Examined: len(candidates)}
	doomed := make([]bool, len(candidates))
	doomedCount := 0
	var doomedSize int64
	doom := func(i int) {
		doomed[i] = true
		doomedCount++
		doomedSize += candidates[i].size
	}

	if policy.MaxAge > 0 {
		cutoff := time.Now().Add(-policy.MaxAge)
		for i, c := range candidates {
			if c.storedAt.Before(cutoff) {
				doom(i)
				result.ByAge++
			}
		}
	}
	for i := range candidates {
		if policy.MaxSize <= 0 || totalSize-doomedSize <= policy.MaxSize {
			break
		}
		if !doomed[i] {
			doom(i)
			result.BySize++
		}
	}
	for i := range candidates {
		if policy.MaxFiles <= 0 || len(candidates)-doomedCount <= policy.MaxFiles {
			break
		}
		if !doomed[i] {
			doom(i)
			result.ByCount++
		}
	}

	if policy.DryRun {
		result.Removed = doomedCount
		result.FreedBytes = doomedSize
		return result, nil
	}

	err = cm.store.withProcessLock(func() error {
		for i, c := range candidates {
			if !doomed[i] {
				continue
			}
			if err := os.Remove(c.path); err == nil {
				result.Removed++
				result.FreedBytes += c.size
			}
		}
		return nil
	})
	return result, err
}

// entryName maps a source path to its cache file name.
func (s *tokenStore) entryName(filePath string) string {
	return fmt.Sprintf("%016x%s", xxh3.HashString(filePath), cacheFileExt)
}

func (s *tokenStore) entryPath(filePath string) string {
	return filepath.Join(s.dir, s.entryName(filePath))
}

// withProcessLock runs fn while holding the cross-process lock.
func (s *tokenStore) withProcessLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock cache directory: %w", err)
	}
	defer s.lock.Unlock()
	return fn()
}

// files lists the entry files, leaving out the lock file.
func (s *tokenStore) files() ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	files := make([]fs.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), cacheFileExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, info)
	}
	return files, nil
}

func (s *tokenStore) load(filePath string) ([]string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	path := s.entryPath(filePath)
	entry, err := readTokenEntry(path)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(filePath)
	if err != nil || !info.ModTime().Equal(entry.ModTime) || info.Size() != entry.Size ||
		entry.RulesVersion != extractionRulesVersion {
		// stale, drop it so the next save starts clean
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Tokens, true
}

func (s *tokenStore) save(filePath string, tokens []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	entry := tokenEntry{
		Tokens:       tokens,
		ModTime:      info.ModTime(),
		Size:         info.Size(),
		StoredAt:     time.Now(),
		RulesVersion: extractionRulesVersion,
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return s.withProcessLock(func() error {
		if err := os.WriteFile(s.entryPath(filePath), buffer.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write cache file: %w", err)
		}
		return nil
	})
}

func (s *tokenStore) remove(filePath string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.entryPath(filePath)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

func readTokenEntry(path string) (*tokenEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry tokenEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
