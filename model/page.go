package model

// PageText holds the raw text lines extracted from a single page.
type PageText struct {
	// Page is the zero-based page index assigned by the extractor.
	Page int `json:"page"`

	// Lines are the raw text lines in reading order. An empty slice is
	// valid; image-only pages commonly extract to nothing.
	Lines []string `json:"lines"`
}

// NewPageText creates a page with the given index and lines.
func NewPageText(page int, lines ...string) PageText {
	return PageText{
		Page:  page,
		Lines: lines,
	}
}

// LineCount returns the number of raw lines on the page.
func (p PageText) LineCount() int {
	return len(p.Lines)
}

// IsEmpty reports whether the page has no lines at all.
func (p PageText) IsEmpty() bool {
	return len(p.Lines) == 0
}
