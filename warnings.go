package tessera

import (
	"fmt"
	"strings"
)

// Warning codes reported by pipeline runs.
const (
	// WarnEmptyDocument means no paragraphs could be reconstructed from
	// any page. Common for fully scanned or image-only documents.
	WarnEmptyDocument = "empty-document"

	// WarnEmptyPage means an explicitly requested page produced no
	// paragraphs.
	WarnEmptyPage = "empty-page"
)

// Warning describes a non-fatal condition encountered while processing a
// document. Processing succeeded, but the result may be smaller than
// expected.
type Warning struct {
	// Code is a stable machine-readable identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Page is the zero-based page the warning concerns, or -1 when it
	// applies to the whole document.
	Page int
}

// FormatWarnings renders warnings as a single semicolon-separated string,
// convenient for logging.
//
// Example:
//
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tessera.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if w.Page >= 0 {
			parts = append(parts, fmt.Sprintf("%s: %s (page %d)", w.Code, w.Message, w.Page))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", w.Code, w.Message))
		}
	}
	return strings.Join(parts, "; ")
}
