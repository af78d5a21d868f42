//go:build !ocr

package extract

import (
	"errors"
	"io"

	"github.com/tsawler/tessera/model"
)

// ErrOCRNotEnabled is returned when image extraction is attempted but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// OCRExtractor is the stub used when the "ocr" build tag is not set.
// Extraction always fails with ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type OCRExtractor struct{}

// NewOCRExtractor creates a stub OCR extractor. The language arguments
// are accepted for signature compatibility and ignored.
func NewOCRExtractor(languages ...string) *OCRExtractor {
	return &OCRExtractor{}
}

// Extract returns ErrOCRNotEnabled.
func (e *OCRExtractor) Extract(_ io.Reader) ([]model.PageText, error) {
	return nil, ErrOCRNotEnabled
}
