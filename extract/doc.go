// Package extract pulls raw page-tagged text lines out of document
// streams, one extractor per format. The output feeds paragraph
// reconstruction: extractors preserve line breaks and separate logical
// blocks with blank lines, but do no text cleanup of their own.
//
// [ForFile] selects an extractor from a filename:
//
//	ex, err := extract.ForFile("report.pdf")
//	if err != nil {
//		return err
//	}
//	pages, err := ex.Extract(f)
//
// PDF pages keep their zero-based page indices, and EPUB chapters map to
// one page each in spine order. Formats without a page concept (DOCX,
// Markdown, HTML, CSV) extract to a single page zero. Image input
// requires the "ocr" build tag and a Tesseract installation; without the
// tag the OCR extractor returns [ErrOCRNotEnabled].
package extract
