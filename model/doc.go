// Package model provides the data types that flow through the chunking
// pipeline.
//
// The pipeline transforms text in four stages, each stage producing the
// input of the next:
//
//	[]PageText -> []Paragraph -> []Sentence -> []Chunk
//
// # Page Text
//
// [PageText] is the raw input: the ordered text lines of one page as an
// upstream extractor produced them, tagged with a zero-based page index.
// Page indices are monotonically assigned but not necessarily contiguous
// when pages are filtered.
//
// # Paragraphs and Sentences
//
// [Paragraph] is a maximal run of merged lines between blank or short-line
// separators. [Sentence] is a language-aware sub-unit of exactly one
// paragraph. Both carry the page they originated from, and their text is
// never empty after trimming.
//
// # Chunks
//
// [Chunk] is the final unit handed to indexing: a space-joined run of
// consecutive sentences bounded by a size budget, carrying the page of its
// first sentence and an opaque source identifier.
//
// All sizes in the pipeline are measured in runes, not bytes, so that CJK
// and Latin text are budgeted alike. Every type here is a plain value:
// created fresh per run, immutable once constructed, safe to share.
package model
