//go:build ocr

package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/tessera/model"
)

// OCRExtractor recognizes text in images via the Tesseract engine. It
// requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Recognized text lands on page zero; OCR input is one image, not a
// paginated document.
type OCRExtractor struct {
	languages []string
}

// NewOCRExtractor creates an OCR extractor. Languages are Tesseract
// language codes such as "eng" or "chi_sim"; none means Tesseract's
// default.
func NewOCRExtractor(languages ...string) *OCRExtractor {
	return &OCRExtractor{languages: languages}
}

// Extract runs OCR over the image data in the stream.
func (e *OCRExtractor) Extract(r io.Reader) ([]model.PageText, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set ocr language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("ocr failed: %w", err)
	}

	return []model.PageText{{
		Page:  0,
		Lines: strings.Split(text, "\n"),
	}}, nil
}
