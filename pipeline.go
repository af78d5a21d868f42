package tessera

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/schema"

	"github.com/tsawler/tessera/extract"
	"github.com/tsawler/tessera/model"
	"github.com/tsawler/tessera/rag"
	"github.com/tsawler/tessera/text"
)

// Pipeline provides a fluent interface for turning a document into chunks.
// Each configuration method returns a new Pipeline instance, making it
// safe for concurrent use and allowing method chaining.
//
// A Pipeline holds no open resources: terminal operations open, read, and
// close the source on each call.
type Pipeline struct {
	// Source (exactly one is used)
	filename  string
	reader    io.Reader
	pages     []model.PageText
	havePages bool

	// Extraction override; nil means detect from the filename
	extractor extract.Extractor

	// Configuration
	options chunkOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Pipeline with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename:  p.filename,
		reader:    p.reader,
		pages:     p.pages,
		havePages: p.havePages,
		extractor: p.extractor,
		options:   p.options.clone(),
		err:       p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// Pages restricts processing to the given pages (0-indexed). Pages not
// listed are skipped before paragraph reconstruction. Multiple calls are
// cumulative.
//
// Example:
//
//	chunks, _, err := tessera.Open("doc.pdf").Pages(0, 2, 4).Chunks()
func (p *Pipeline) Pages(pages ...int) *Pipeline {
	newP := p.clone()
	newP.options.pages = append(newP.options.pages, pages...)
	return newP
}

// PageRange restricts processing to a range of pages (0-indexed,
// inclusive). Cumulative with Pages.
//
// Example:
//
//	chunks, _, err := tessera.Open("doc.pdf").PageRange(0, 9).Chunks()
func (p *Pipeline) PageRange(start, end int) *Pipeline {
	newP := p.clone()
	for i := start; i <= end; i++ {
		newP.options.pages = append(newP.options.pages, i)
	}
	return newP
}

// MinLineLength sets the minimum length in runes for an extracted line to
// contribute text to a paragraph; shorter lines act as paragraph breaks.
func (p *Pipeline) MinLineLength(n int) *Pipeline {
	newP := p.clone()
	if n < 1 {
		newP.err = fmt.Errorf("min line length must be at least 1, got %d", n)
		return newP
	}
	newP.options.minLineLength = n
	return newP
}

// ChunkSize sets the chunk budget in runes.
//
// Example:
//
//	chunks, _, err := tessera.Open("doc.pdf").ChunkSize(400).Chunks()
func (p *Pipeline) ChunkSize(n int) *Pipeline {
	newP := p.clone()
	if n < 1 {
		newP.err = fmt.Errorf("chunk size must be positive, got %d", n)
		return newP
	}
	newP.options.chunkSize = n
	return newP
}

// OverlapSize sets the overlap budget in runes. Zero disables overlap.
func (p *Pipeline) OverlapSize(n int) *Pipeline {
	newP := p.clone()
	if n < 0 {
		newP.err = fmt.Errorf("overlap size must not be negative, got %d", n)
		return newP
	}
	newP.options.overlapSize = n
	return newP
}

// WithChunkerConfig applies a chunker configuration in one call, usually
// one of the rag presets.
//
// Example:
//
//	chunks, _, err := tessera.Open("doc.pdf").
//	    WithChunkerConfig(rag.SmallChunkerConfig()).
//	    Chunks()
func (p *Pipeline) WithChunkerConfig(config rag.ChunkerConfig) *Pipeline {
	newP := p.clone()
	if config.ChunkSize > 0 {
		newP.options.chunkSize = config.ChunkSize
	}
	if config.OverlapSize >= 0 {
		newP.options.overlapSize = config.OverlapSize
	}
	if config.Source != "" {
		newP.options.source = config.Source
	}
	return newP
}

// Source sets the provenance label stamped on every chunk. Defaults to
// the filename the pipeline was opened with.
func (p *Pipeline) Source(source string) *Pipeline {
	newP := p.clone()
	newP.options.source = source
	return newP
}

// WithDetector replaces the language detector used to pick the sentence
// segmentation rule. The default is the built-in script detector.
func (p *Pipeline) WithDetector(d text.LanguageDetector) *Pipeline {
	newP := p.clone()
	newP.options.detector = d
	return newP
}

// WithLogger sets the logger for non-fatal processing reports.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	newP := p.clone()
	newP.options.logger = logger
	return newP
}

// WithExtractor overrides extractor selection. Useful for files whose
// extension lies about their content, or for custom formats.
func (p *Pipeline) WithExtractor(ex extract.Extractor) *Pipeline {
	newP := p.clone()
	newP.extractor = ex
	return newP
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// Paragraphs runs extraction and paragraph reconstruction, returning the
// page-tagged paragraphs. Zero paragraphs with a WarnEmptyDocument warning
// means the document had no reconstructable text.
func (p *Pipeline) Paragraphs() ([]model.Paragraph, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	pages, err := p.loadPages()
	if err != nil {
		return nil, nil, err
	}

	paragraphs, warnings := p.reconstruct(pages)
	return paragraphs, warnings, nil
}

// Sentences runs the pipeline through sentence segmentation.
func (p *Pipeline) Sentences() ([]model.Sentence, []Warning, error) {
	paragraphs, warnings, err := p.Paragraphs()
	if err != nil {
		return nil, nil, err
	}

	segmenter := text.NewSegmenterWithConfig(text.SegmenterConfig{
		Detector: p.options.detector,
	})
	return segmenter.SegmentAll(paragraphs), warnings, nil
}

// Chunks runs the full pipeline and returns size-bounded, overlapping
// chunks. This is the primary terminal operation.
//
// Returns the chunks, any warnings encountered during processing, and an
// error if extraction failed. Warnings indicate non-fatal conditions
// (e.g. an image-only document) where processing succeeded but produced
// less than expected.
//
// Example:
//
//	chunks, warnings, err := tessera.Open("document.pdf").Chunks()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tessera.FormatWarnings(warnings))
//	}
func (p *Pipeline) Chunks() ([]model.Chunk, []Warning, error) {
	sentences, warnings, err := p.Sentences()
	if err != nil {
		return nil, nil, err
	}

	chunker := rag.NewChunkerWithConfig(rag.ChunkerConfig{
		ChunkSize:   p.options.chunkSize,
		OverlapSize: p.options.overlapSize,
		Source:      p.source(),
	})
	return chunker.Chunk(sentences), warnings, nil
}

// Documents runs the full pipeline and returns langchaingo documents
// ready for vector-store ingestion.
//
// Example:
//
//	docs, _, err := tessera.Open("document.pdf").Documents()
//	if err == nil {
//	    _, err = store.AddDocuments(ctx, docs)
//	}
func (p *Pipeline) Documents() ([]schema.Document, []Warning, error) {
	chunks, warnings, err := p.Chunks()
	if err != nil {
		return nil, nil, err
	}
	return rag.SchemaDocuments(chunks), warnings, nil
}

// ============================================================================
// Internal pipeline stages
// ============================================================================

// loadPages produces the raw page text from whichever source the pipeline
// was created with.
func (p *Pipeline) loadPages() ([]model.PageText, error) {
	if p.havePages {
		return p.pages, nil
	}

	if p.reader != nil {
		if p.extractor == nil {
			return nil, fmt.Errorf("no extractor specified for reader input")
		}
		pages, err := p.extractor.Extract(p.reader)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", p.source(), err)
		}
		return pages, nil
	}

	if p.filename == "" {
		return nil, fmt.Errorf("no input specified")
	}

	ex := p.extractor
	if ex == nil {
		var err error
		ex, err = extract.ForFile(p.filename)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(p.filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.filename, err)
	}
	defer f.Close()

	pages, err := ex.Extract(f)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", p.filename, err)
	}
	return pages, nil
}

// reconstruct folds raw pages into paragraphs and collects warnings for
// empty results.
func (p *Pipeline) reconstruct(pages []model.PageText) ([]model.Paragraph, []Warning) {
	reconstructor := text.NewReconstructorWithConfig(text.ReconstructorConfig{
		MinLineLength: p.options.minLineLength,
		Pages:         p.options.pages,
	})
	paragraphs := reconstructor.Reconstruct(pages)

	var warnings []Warning
	if len(paragraphs) == 0 {
		const msg = "no paragraphs reconstructed; document may be scanned or image-only"
		p.logger().Warn(msg, "source", p.source())
		warnings = append(warnings, Warning{Code: WarnEmptyDocument, Message: msg, Page: -1})
		return paragraphs, warnings
	}

	if p.options.pages != nil {
		counts := make(map[int]int, len(paragraphs))
		for _, para := range paragraphs {
			counts[para.Page]++
		}
		seen := make(map[int]bool, len(p.options.pages))
		for _, page := range p.options.pages {
			if counts[page] == 0 && !seen[page] {
				seen[page] = true
				warnings = append(warnings, Warning{
					Code:    WarnEmptyPage,
					Message: "requested page produced no paragraphs",
					Page:    page,
				})
			}
		}
	}
	return paragraphs, warnings
}

// source returns the provenance label for this run.
func (p *Pipeline) source() string {
	if p.options.source != "" {
		return p.options.source
	}
	return p.filename
}

// logger returns the configured logger, defaulting when unset.
func (p *Pipeline) logger() *slog.Logger {
	if p.options.logger != nil {
		return p.options.logger
	}
	return slog.Default()
}
