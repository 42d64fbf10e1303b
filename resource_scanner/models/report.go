package models

// MatchKind tells how a resource was found to be referenced.
type MatchKind string

const (
	MatchNone    MatchKind = "none"
	MatchExact   MatchKind = "exact"
	MatchSimilar MatchKind = "similar"
)

// UsedResource pairs a catalog entry with the way it is referenced.
type UsedResource struct {
	Entry *ResourceEntry `json:"entry" yaml:"entry"`
	Match MatchKind      `json:"match" yaml:"match"`
}

// UsageReport splits a catalog into used and unused resources.
type UsageReport struct {
	Unused []*ResourceEntry `json:"unused" yaml:"unused"`
	Used   []UsedResource   `json:"used" yaml:"used"`
	// UnusedBytes is the total size of the unused resources
	UnusedBytes int64 `json:"unused_bytes" yaml:"unused_bytes"`
}
