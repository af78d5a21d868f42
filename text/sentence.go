package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/tessera/model"
)

// DefaultFallbackThreshold is the paragraph length in runes above which a
// single-sentence result from the strict Latin rule triggers the looser
// whitespace-only split.
const DefaultFallbackThreshold = 100

// SegmenterConfig holds configuration options for sentence segmentation.
type SegmenterConfig struct {
	// Detector identifies the language of each paragraph. Detection failure
	// is not an error: the paragraph is segmented with the Latin rules.
	// Default: NewScriptDetector()
	Detector LanguageDetector

	// FallbackThreshold is the minimum paragraph length in runes at which a
	// single-sentence result from the strict Latin rule falls back to a
	// looser split on terminal punctuation plus any whitespace.
	// Default: DefaultFallbackThreshold
	FallbackThreshold int
}

// DefaultSegmenterConfig returns sensible default configuration.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		Detector:          NewScriptDetector(),
		FallbackThreshold: DefaultFallbackThreshold,
	}
}

// Segmenter splits paragraphs into page-tagged sentences. The splitting
// rule is selected once per paragraph from the language detection result:
// CJK text cuts after each terminal punctuation mark, Latin text requires a
// whitespace gap and a sentence-start character after the mark.
type Segmenter struct {
	config SegmenterConfig
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		config: DefaultSegmenterConfig(),
	}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration.
// A nil Detector and a non-positive FallbackThreshold fall back to the
// defaults.
func NewSegmenterWithConfig(config SegmenterConfig) *Segmenter {
	if config.Detector == nil {
		config.Detector = NewScriptDetector()
	}
	if config.FallbackThreshold <= 0 {
		config.FallbackThreshold = DefaultFallbackThreshold
	}
	return &Segmenter{
		config: config,
	}
}

// Segment splits one paragraph into sentences. All sentences share the
// paragraph's page; empty fragments are dropped after trimming.
func (s *Segmenter) Segment(p model.Paragraph) []model.Sentence {
	parts := s.splitterFor(p.Text).split(p.Text)

	sentences := make([]model.Sentence, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, model.Sentence{Page: p.Page, Text: part})
	}
	return sentences
}

// SegmentAll splits every paragraph in order and concatenates the results.
func (s *Segmenter) SegmentAll(paragraphs []model.Paragraph) []model.Sentence {
	sentences := make([]model.Sentence, 0)
	for _, p := range paragraphs {
		sentences = append(sentences, s.Segment(p)...)
	}
	return sentences
}

// splitterFor selects the segmentation variant for the given text.
// Detection failure selects the Latin splitter.
func (s *Segmenter) splitterFor(text string) splitter {
	tag, err := s.config.Detector.Detect(text)
	if err == nil && CJK(tag) {
		return cjkSplitter{}
	}
	return latinSplitter{fallbackThreshold: s.config.FallbackThreshold}
}

// splitter is the closed set of segmentation strategies. Exactly one is
// chosen per paragraph.
type splitter interface {
	split(text string) []string
}

// cjkSplitter cuts immediately after each terminal punctuation mark,
// retaining the mark with the preceding sentence. CJK terminal punctuation
// is unambiguous, so no lookahead is needed.
type cjkSplitter struct{}

func (cjkSplitter) split(text string) []string {
	parts := make([]string, 0)
	var b strings.Builder

	for _, r := range text {
		b.WriteRune(r)
		if isCJKTerminal(r) {
			parts = append(parts, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

// latinSplitter cuts at a terminal mark followed by whitespace and a
// sentence-start character. Requiring the next token to look like a new
// sentence avoids false splits on abbreviations such as "Mr.". When the
// strict rule finds no boundary in a paragraph longer than the fallback
// threshold, a looser pass splits on terminal mark plus any whitespace.
type latinSplitter struct {
	fallbackThreshold int
}

func (ls latinSplitter) split(text string) []string {
	parts := splitLatin(text, true)
	if len(parts) == 1 && utf8.RuneCountInString(text) > ls.fallbackThreshold {
		parts = splitLatin(text, false)
	}
	return parts
}

// splitLatin scans for terminal punctuation followed by a whitespace gap.
// In strict mode the first rune after the gap must be an uppercase letter
// or an opening quote. The gap itself is consumed; punctuation stays with
// the preceding sentence.
func splitLatin(text string, strict bool) []string {
	runes := []rune(text)
	parts := make([]string, 0)

	start := 0
	i := 0
	for i < len(runes) {
		if !isLatinTerminal(runes[i]) {
			i++
			continue
		}

		// Consume the whitespace gap after the mark.
		gap := i + 1
		for gap < len(runes) && unicode.IsSpace(runes[gap]) {
			gap++
		}
		if gap == i+1 || gap >= len(runes) {
			// No gap, or nothing follows it.
			i++
			continue
		}
		if strict && !isSentenceStart(runes[gap]) {
			i = gap
			continue
		}

		parts = append(parts, string(runes[start:i+1]))
		start = gap
		i = gap
	}

	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

// isCJKTerminal reports whether r terminates a CJK sentence.
func isCJKTerminal(r rune) bool {
	switch r {
	case '。', '！', '？', '；', '!', '?':
		return true
	default:
		return false
	}
}

// isLatinTerminal reports whether r terminates a Latin sentence.
func isLatinTerminal(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}

// isSentenceStart reports whether r can open a new sentence: an uppercase
// letter or an opening quote.
func isSentenceStart(r rune) bool {
	if unicode.IsUpper(r) {
		return true
	}
	switch r {
	case '"', '\'', '“', '”':
		return true
	default:
		return false
	}
}
