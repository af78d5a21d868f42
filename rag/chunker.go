package rag

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/tessera/model"
)

const (
	// DefaultChunkSize is the default chunk budget in runes.
	DefaultChunkSize = 800

	// DefaultOverlapSize is the default overlap budget in runes.
	DefaultOverlapSize = 200
)

// ChunkerConfig holds configuration options for chunk building.
type ChunkerConfig struct {
	// ChunkSize is the maximum chunk length in runes, counting the spaces
	// that join sentences. A single sentence longer than this is kept whole
	// and becomes an oversized chunk on its own.
	// Default: DefaultChunkSize
	ChunkSize int

	// OverlapSize is the minimum number of trailing runes of one chunk that
	// reappear at the start of the next, rounded up to whole sentences.
	// Default: DefaultOverlapSize
	OverlapSize int

	// Source is an origin label (usually a filename) stamped on every
	// chunk for provenance.
	Source string
}

// DefaultChunkerConfig returns sensible default configuration.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:   DefaultChunkSize,
		OverlapSize: DefaultOverlapSize,
	}
}

// Chunker packs ordered page-tagged sentences into chunks. Consecutive
// chunks overlap by whole sentences so retrieval context survives the cut
// points. Chunking is deterministic: the same sentences and budgets always
// produce the same chunk sequence.
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker with default configuration.
func NewChunker() *Chunker {
	return &Chunker{
		config: DefaultChunkerConfig(),
	}
}

// NewChunkerWithConfig creates a chunker with custom configuration.
// Non-positive ChunkSize falls back to the default; a negative OverlapSize
// is treated as zero.
func NewChunkerWithConfig(config ChunkerConfig) *Chunker {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.OverlapSize < 0 {
		config.OverlapSize = 0
	}
	return &Chunker{
		config: config,
	}
}

// Chunk builds chunks from the sentence sequence. Each chunk takes its page
// from its first sentence. Zero sentences produce zero chunks.
//
// The builder is total: it terminates for any finite input, even when
// OverlapSize meets or exceeds ChunkSize, because the next chunk always
// starts at least one sentence past the previous one.
func (c *Chunker) Chunk(sentences []model.Sentence) []model.Chunk {
	chunks := make([]model.Chunk, 0)
	total := len(sentences)

	// Sentence lengths in runes, computed once up front.
	lengths := make([]int, total)
	for idx, s := range sentences {
		lengths[idx] = utf8.RuneCountInString(s.Text)
	}

	i := 0
	for i < total {
		start := i
		page := sentences[i].Page

		var content strings.Builder
		content.WriteString(sentences[i].Text)
		size := lengths[i]
		i++

		// Grow while the next sentence plus a joining space still fits.
		for i < total && size+lengths[i]+1 <= c.config.ChunkSize {
			content.WriteByte(' ')
			content.WriteString(sentences[i].Text)
			size += lengths[i] + 1
			i++
		}

		chunks = append(chunks, model.Chunk{
			Content: content.String(),
			Page:    page,
			Source:  c.config.Source,
		})

		if i >= total {
			break
		}

		next := overlapStart(lengths, start, i, c.config.OverlapSize)
		if next >= total {
			break
		}
		i = next
	}

	return chunks
}

// ChunkStats summarizes a chunk sequence.
type ChunkStats struct {
	// Count is the number of chunks.
	Count int

	// TotalRunes is the summed content length in runes.
	TotalRunes int

	// MinRunes and MaxRunes are the shortest and longest chunk lengths.
	MinRunes int
	MaxRunes int

	// AvgRunes is the mean chunk length, truncated.
	AvgRunes int

	// Pages is the number of distinct pages chunks start on.
	Pages int
}

// Stats computes summary statistics for a chunk sequence. Useful for
// tuning budgets against a document corpus before indexing.
func Stats(chunks []model.Chunk) ChunkStats {
	stats := ChunkStats{Count: len(chunks)}
	if len(chunks) == 0 {
		return stats
	}

	pages := make(map[int]bool)
	stats.MinRunes = chunks[0].Len()

	for _, ch := range chunks {
		n := ch.Len()
		stats.TotalRunes += n
		if n < stats.MinRunes {
			stats.MinRunes = n
		}
		if n > stats.MaxRunes {
			stats.MaxRunes = n
		}
		pages[ch.Page] = true
	}

	stats.AvgRunes = stats.TotalRunes / len(chunks)
	stats.Pages = len(pages)
	return stats
}
