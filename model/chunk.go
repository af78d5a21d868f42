package model

import (
	"strings"
	"unicode/utf8"
)

// Chunk is the final packaged unit handed to embedding and indexing. Its
// content is the space-joined concatenation of a contiguous run of
// sentences, in original order, with no sentence split across chunks.
type Chunk struct {
	// Content is the chunk text.
	Content string `json:"content"`

	// Page is the zero-based page index of the first sentence in the chunk.
	Page int `json:"page"`

	// Source is an opaque caller-supplied identifier, typically the
	// originating document's path. Constant across all chunks of one run.
	Source string `json:"source"`
}

// Len returns the content length in runes.
func (c Chunk) Len() int {
	return utf8.RuneCountInString(c.Content)
}

// WordCount returns the number of whitespace-separated words in the content.
func (c Chunk) WordCount() int {
	return len(strings.Fields(c.Content))
}

// EstimatedTokens estimates the token count as runes/4. A rough
// approximation, useful for sizing against embedding model limits.
func (c Chunk) EstimatedTokens() int {
	return c.Len() / 4
}
