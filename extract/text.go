package extract

import (
	"io"
	"strings"

	"github.com/tsawler/tessera/model"
)

// TextExtractor extracts plain text. Form feeds separate pages, matching
// the convention of pdftotext and printer-oriented text output; most
// files have none and extract to a single page zero.
type TextExtractor struct{}

// NewTextExtractor creates a plain text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads the whole stream and splits it into pages and lines.
// Carriage returns are dropped so CRLF input behaves like LF input.
func (e *TextExtractor) Extract(r io.Reader) ([]model.PageText, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	rawPages := strings.Split(text, "\f")
	pages := make([]model.PageText, 0, len(rawPages))
	for i, raw := range rawPages {
		pages = append(pages, model.PageText{
			Page:  i,
			Lines: strings.Split(raw, "\n"),
		})
	}

	return pages, nil
}
