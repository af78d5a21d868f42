package text

import (
	"errors"
	"unicode"

	"golang.org/x/text/language"
)

// LanguageDetector identifies the language of a text span. Implementations
// return a BCP 47 language tag, or an error when no determination can be
// made. Detection failure is never fatal to segmentation; callers fall back
// to Latin-script rules.
type LanguageDetector interface {
	Detect(text string) (language.Tag, error)
}

// ErrUndetermined is returned by detectors when the input contains no
// script evidence to decide on (empty text, digits, symbols).
var ErrUndetermined = errors.New("language could not be determined")

// ScriptDetector infers the dominant language of a text span from Unicode
// script membership. It counts runes per script block and returns the
// language whose scripts dominate. It needs no external data or models,
// and its results are deterministic.
//
// The detector distinguishes Chinese, Japanese, and Korean from
// Latin-script text; everything else maps to English as a Latin-script
// stand-in, which downstream segmentation treats identically.
type ScriptDetector struct{}

// NewScriptDetector creates a new script-based detector.
func NewScriptDetector() *ScriptDetector {
	return &ScriptDetector{}
}

// Detect returns the dominant language of the text, or ErrUndetermined when
// the text contains no countable script runes.
func (d *ScriptDetector) Detect(text string) (language.Tag, error) {
	var han, hiragana, katakana, hangul, latin int

	for _, r := range text {
		switch {
		case isHan(r):
			han++
		case isHiragana(r):
			hiragana++
		case isKatakana(r):
			katakana++
		case isHangul(r):
			hangul++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	kana := hiragana + katakana
	total := han + kana + hangul + latin
	if total == 0 {
		return language.Und, ErrUndetermined
	}

	switch {
	case kana > 0 && han+kana >= latin:
		// Kana only occurs in Japanese; kanji count toward it too.
		return language.Japanese, nil
	case hangul > latin:
		return language.Korean, nil
	case han > latin:
		return language.Chinese, nil
	default:
		return language.English, nil
	}
}

// CJK reports whether the language tag denotes a language written in a CJK
// script (Han ideographs, kana, or hangul). Undetermined tags are not CJK.
func CJK(tag language.Tag) bool {
	script, _ := tag.Script()
	switch script.String() {
	case "Hans", "Hant", "Hani", "Jpan", "Kore", "Hang", "Hira", "Kana":
		return true
	default:
		return false
	}
}

// isHan reports whether r is a Han ideograph.
// This includes:
//   - CJK Unified Ideographs: U+4E00–U+9FFF
//   - CJK Extension A: U+3400–U+4DBF
func isHan(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF)
}

// isHiragana reports whether r is in the Hiragana block (U+3040–U+309F).
func isHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// isKatakana reports whether r is in the Katakana block (U+30A0–U+30FF).
func isKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// isHangul reports whether r is in a Hangul block.
// This includes:
//   - Hangul Syllables: U+AC00–U+D7AF
//   - Hangul Jamo: U+1100–U+11FF
func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0x1100 && r <= 0x11FF)
}
