// Package config provides configuration structures for the instant search server.
// It defines per-index settings and the server configuration file format.
package config

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-instant-search/index"
)

// CandidateTally selects how candidate documents are tallied from the
// selected trigram posting lists.
type CandidateTally string

const (
	// TallyAll walks the posting list of every selected trigram.
	TallyAll CandidateTally = "all"
	// TallyLegacy walks the second selected list twice and never the third.
	// Kept for compatibility with results of earlier releases.
	TallyLegacy CandidateTally = "legacy"
)

const (
	// DefaultMaxAlternatives caps the "did you mean" results of a query.
	DefaultMaxAlternatives = 10
)

// IndexSettings contains all configuration options for a single trigram index.
type IndexSettings struct {
	Name            string          `json:"name" yaml:"name"`                                // Unique name for the index
	PostingStore    index.StoreKind `json:"posting_store" yaml:"postingStore"`               // "compact" (default), "map" or "roaring"
	BufferCapacity  int             `json:"buffer_capacity" yaml:"bufferCapacity"`           // Unsorted buffer size of compact posting sets
	MaxAlternatives int             `json:"max_alternatives" yaml:"maxAlternatives"`         // Maximum alternative matches returned per query
	CandidateTally  CandidateTally  `json:"candidate_tally,omitempty" yaml:"candidateTally"` // "all" (default) or "legacy"
}

// ApplyDefaults applies default values to the index settings
func (settings *IndexSettings) ApplyDefaults() {
	if settings.PostingStore == "" {
		settings.PostingStore = index.StoreCompact
	}
	if settings.BufferCapacity <= 0 {
		settings.BufferCapacity = index.DefaultBufferCapacity
	}
	if settings.MaxAlternatives <= 0 {
		settings.MaxAlternatives = DefaultMaxAlternatives
	}
	if settings.CandidateTally == "" {
		settings.CandidateTally = TallyAll
	}
}

// Validate returns a list of human readable problems with the settings.
// An empty list means the settings are usable.
func (settings *IndexSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Name) == "" {
		problems = append(problems, "Index name cannot be empty or whitespace-only")
	}

	switch settings.PostingStore {
	case "", index.StoreCompact, index.StoreMap, index.StoreRoaring:
	default:
		problems = append(problems, fmt.Sprintf("Invalid posting_store '%s' (must be 'compact', 'map' or 'roaring')", settings.PostingStore))
	}

	switch settings.CandidateTally {
	case "", TallyAll, TallyLegacy:
	default:
		problems = append(problems, fmt.Sprintf("Invalid candidate_tally '%s' (must be 'all' or 'legacy')", settings.CandidateTally))
	}

	if settings.BufferCapacity < 0 {
		problems = append(problems, "buffer_capacity cannot be negative")
	}
	if settings.MaxAlternatives < 0 {
		problems = append(problems, "max_alternatives cannot be negative")
	}

	return problems
}

// StoreFactory builds the posting store factory described by the settings.
func (settings *IndexSettings) StoreFactory() (index.StoreFactory, error) {
	return index.NewStoreFactory(settings.PostingStore, settings.BufferCapacity)
}
