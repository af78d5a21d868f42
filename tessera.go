// Package tessera provides a fluent API for turning documents into
// size-bounded, overlapping text chunks for RAG pipelines.
//
// Documents flow through three stages: raw page lines are folded into
// paragraphs, paragraphs are split into sentences with language-sensitive
// rules, and sentences are greedily packed into chunks that overlap at
// sentence boundaries. Every chunk carries the zero-based page it started
// on and a source label.
//
// Basic usage:
//
//	chunks, warnings, err := tessera.Open("document.pdf").Chunks()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tessera.FormatWarnings(warnings))
//	}
//
// With options:
//
//	chunks, _, err := tessera.Open("report.pdf").
//	    Pages(0, 1, 2).
//	    ChunkSize(400).
//	    OverlapSize(100).
//	    Chunks()
//
// For vector-store ingestion, [Pipeline.Documents] returns langchaingo
// documents directly. The lower-level extract, text, and rag packages are
// also available when individual stages are needed.
package tessera

import (
	"io"

	"github.com/tsawler/tessera/extract"
	"github.com/tsawler/tessera/model"
)

// Open creates a Pipeline for a document file. The format is detected
// from the filename; no I/O happens until a terminal operation runs.
//
// Example:
//
//	chunks, warnings, err := tessera.Open("document.pdf").Chunks()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultChunkOptions(),
	}
}

// FromReader creates a Pipeline reading from r with the given extractor.
// The source label is stamped on every chunk. The caller owns r; since a
// reader can only be consumed once, run exactly one terminal operation.
//
// Example:
//
//	chunks, _, err := tessera.FromReader(f, extract.NewPDFExtractor(), "report.pdf").Chunks()
func FromReader(r io.Reader, ex extract.Extractor, source string) *Pipeline {
	p := &Pipeline{
		reader:    r,
		extractor: ex,
		options:   defaultChunkOptions(),
	}
	p.options.source = source
	return p
}

// FromPages creates a Pipeline from already-extracted page text, skipping
// the extraction stage. Useful when page text comes from another system.
//
// Example:
//
//	pages := []model.PageText{model.NewPageText(0, "First line.", "Second line.")}
//	chunks, _, err := tessera.FromPages(pages, "inline").Chunks()
func FromPages(pages []model.PageText, source string) *Pipeline {
	p := &Pipeline{
		pages:     pages,
		havePages: true,
		options:   defaultChunkOptions(),
	}
	p.options.source = source
	return p
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	ex := tessera.Must(extract.ForFile("document.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustChunks is a helper that wraps a terminal operation such as Chunks()
// and panics if the error is non-nil. It discards warnings and returns
// just the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	chunks := tessera.MustChunks(tessera.Open("document.pdf").Chunks())
func MustChunks[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
