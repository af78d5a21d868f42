package tessera

import (
	"log/slog"

	"github.com/tsawler/tessera/rag"
	"github.com/tsawler/tessera/text"
)

// chunkOptions holds configuration for a pipeline run.
type chunkOptions struct {
	// Page selection (0-indexed, nil means all pages)
	pages []int

	// Paragraph reconstruction
	minLineLength int

	// Chunk budgets in runes
	chunkSize   int
	overlapSize int

	// Provenance label; defaults to the filename when opened from one
	source string

	// Collaborators
	detector text.LanguageDetector
	logger   *slog.Logger
}

// defaultChunkOptions returns the default pipeline options.
func defaultChunkOptions() chunkOptions {
	return chunkOptions{
		pages:         nil, // nil means all pages
		minLineLength: text.DefaultMinLineLength,
		chunkSize:     rag.DefaultChunkSize,
		overlapSize:   rag.DefaultOverlapSize,
		detector:      text.NewScriptDetector(),
		logger:        slog.Default(),
	}
}

// clone creates a deep copy of chunkOptions.
func (o chunkOptions) clone() chunkOptions {
	newOpts := chunkOptions{
		minLineLength: o.minLineLength,
		chunkSize:     o.chunkSize,
		overlapSize:   o.overlapSize,
		source:        o.source,
		detector:      o.detector,
		logger:        o.logger,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
