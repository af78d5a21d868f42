package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/tsawler/tessera/model"
)

// PDFExtractor extracts text from PDF documents page by page. Page
// indices in the output are zero-based regardless of PDF page labels.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract reads the whole stream and parses it as a PDF. The library
// needs a seekable file, so the stream is spooled to a temp file first.
// Pages that cannot be read contribute an empty line sequence rather than
// failing the document.
func (e *PDFExtractor) Extract(r io.Reader) ([]model.PageText, error) {
	tmp, err := os.CreateTemp("", "tessera-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]model.PageText, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, model.PageText{Page: i - 1})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, model.PageText{Page: i - 1})
			continue
		}
		pages = append(pages, model.PageText{
			Page:  i - 1,
			Lines: strings.Split(text, "\n"),
		})
	}

	return pages, nil
}
