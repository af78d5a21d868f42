package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/tessera/format"
	"github.com/tsawler/tessera/model"
)

// ErrUnsupportedFormat is returned when no extractor handles a file's
// format.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor pulls page-tagged raw text lines out of a document stream.
// An empty line sequence for a page is valid; a parse failure is not.
type Extractor interface {
	Extract(r io.Reader) ([]model.PageText, error)
}

// ForFile returns the extractor for the file's format, detected from its
// extension.
func ForFile(filename string) (Extractor, error) {
	switch f := format.Detect(filename); f {
	case format.PDF:
		return NewPDFExtractor(), nil
	case format.DOCX:
		return NewDOCXExtractor(), nil
	case format.Markdown:
		return NewMarkdownExtractor(), nil
	case format.HTML:
		return NewHTMLExtractor(), nil
	case format.EPUB:
		return NewEPUBExtractor(), nil
	case format.CSV:
		return NewCSVExtractor(), nil
	case format.Text:
		return NewTextExtractor(), nil
	case format.Image:
		return NewOCRExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// singlePage assembles text blocks into one page-zero PageText. Blocks
// are separated by blank lines so paragraph reconstruction keeps them
// apart; multi-line blocks contribute one raw line each.
func singlePage(blocks []string) []model.PageText {
	return []model.PageText{{Page: 0, Lines: blockLines(blocks)}}
}

// blockLines flattens text blocks into raw lines with blank-line
// separators between blocks.
func blockLines(blocks []string) []string {
	lines := make([]string, 0, len(blocks)*2)
	for _, block := range blocks {
		lines = append(lines, strings.Split(block, "\n")...)
		lines = append(lines, "")
	}
	return lines
}
