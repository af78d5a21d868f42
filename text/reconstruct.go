package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/tessera/model"
)

// DefaultMinLineLength is the minimum effective line length in runes.
const DefaultMinLineLength = 1

// ReconstructorConfig holds configuration options for paragraph
// reconstruction.
type ReconstructorConfig struct {
	// MinLineLength is the minimum length in runes, after trailing
	// whitespace is removed, for a line to contribute text to a paragraph.
	// Shorter lines act as paragraph terminators.
	// Default: DefaultMinLineLength
	MinLineLength int

	// Pages is an optional allowlist of page indices. Pages not listed are
	// skipped entirely before line processing. nil means all pages.
	Pages []int
}

// DefaultReconstructorConfig returns sensible default configuration.
func DefaultReconstructorConfig() ReconstructorConfig {
	return ReconstructorConfig{
		MinLineLength: DefaultMinLineLength,
		Pages:         nil,
	}
}

// Reconstructor merges raw per-page text lines into page-tagged paragraphs.
//
// Lines are right-trimmed only; leading whitespace is preserved. A line
// ending in a hyphen is treated as a hyphen-wrapped word continuation and
// appended without a separating space. Page boundaries always terminate the
// current paragraph, so a paragraph never spans pages.
type Reconstructor struct {
	config ReconstructorConfig
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		config: DefaultReconstructorConfig(),
	}
}

// NewReconstructorWithConfig creates a reconstructor with custom
// configuration.
func NewReconstructorWithConfig(config ReconstructorConfig) *Reconstructor {
	return &Reconstructor{
		config: config,
	}
}

// Reconstruct produces paragraphs from the given pages, in input order.
// Pages with no qualifying lines produce zero paragraphs; that is not an
// error, image-only pages commonly extract to nothing.
func (r *Reconstructor) Reconstruct(pages []model.PageText) []model.Paragraph {
	paragraphs := make([]model.Paragraph, 0)

	var allowed map[int]bool
	if r.config.Pages != nil {
		allowed = make(map[int]bool, len(r.config.Pages))
		for _, p := range r.config.Pages {
			allowed[p] = true
		}
	}

	for _, page := range pages {
		if allowed != nil && !allowed[page.Page] {
			continue
		}
		paragraphs = append(paragraphs, r.reconstructPage(page)...)
	}

	return paragraphs
}

// reconstructPage folds one page's lines into paragraphs.
func (r *Reconstructor) reconstructPage(page model.PageText) []model.Paragraph {
	var paragraphs []model.Paragraph
	var buffer string

	// Set when the previous line ended in a hyphen: the next effective
	// line continues a word split by line wrapping and joins without a
	// space.
	continuation := false

	flush := func() {
		// A hyphen-only line strips to nothing and can leave a dangling
		// space at the end of the buffer.
		text := strings.TrimRightFunc(buffer, unicode.IsSpace)
		if text != "" {
			paragraphs = append(paragraphs, model.Paragraph{Page: page.Page, Text: text})
		}
		buffer = ""
		continuation = false
	}

	for _, line := range page.Lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)

		// Blank or short lines terminate the current paragraph.
		if utf8.RuneCountInString(line) < r.config.MinLineLength {
			flush()
			continue
		}

		hyphenated := strings.HasSuffix(line, "-")
		if hyphenated {
			line = strings.TrimRight(line, "-")
		}

		switch {
		case buffer == "":
			buffer = line
		case continuation:
			buffer += line
		default:
			buffer += " " + line
		}
		continuation = hyphenated
	}

	// A page boundary terminates the paragraph even when the text
	// logically continues on the next page.
	flush()

	return paragraphs
}
