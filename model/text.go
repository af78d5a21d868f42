package model

import "unicode/utf8"

// Paragraph is a maximal run of text lines merged between blank or
// short-line separators. A paragraph never spans pages: page boundaries
// always terminate it, even when the text logically continues.
type Paragraph struct {
	// Page is the zero-based index of the page the paragraph's lines were
	// found on.
	Page int `json:"page"`

	// Text is the merged paragraph text. Never empty after trimming.
	Text string `json:"text"`
}

// Len returns the text length in runes.
func (p Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// Sentence is a language-aware sub-unit of exactly one paragraph. It
// inherits that paragraph's page.
type Sentence struct {
	// Page is the zero-based page index inherited from the paragraph.
	Page int `json:"page"`

	// Text is the trimmed sentence text. Never empty.
	Text string `json:"text"`
}

// Len returns the text length in runes.
func (s Sentence) Len() int {
	return utf8.RuneCountInString(s.Text)
}
