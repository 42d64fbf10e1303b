package contracts

import (
	"context"
	"regexp"

	"github.com/yeimages/resfinder/resource_scanner/models"
)

// IScanner is the lifecycle shared by both scanners.
type IScanner interface {
	Start(ctx context.Context, opts models.ScanOptions) <-chan error
	Run(ctx context.Context, opts models.ScanOptions) error
	Reset()
	Stats() models.ScanStats
}

// ICatalogBuilder maps resource keys to the resources found on disk.
type ICatalogBuilder interface {
	IScanner
	Entries() map[string]*models.ResourceEntry
	Lookup(key string) (*models.ResourceEntry, bool)
	Len() int
}

// IUsageCollector holds the strings found in source files and answers
// whether a resource name is referenced.
type IUsageCollector interface {
	IScanner
	ContainsResourceName(name string) bool
	ContainsSimilarResourceName(name string, patterns []*regexp.Regexp) bool
	Strings() []string
	Len() int
}
