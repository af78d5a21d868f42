// Package text provides paragraph reconstruction and language-sensitive
// sentence segmentation over extracted page text.
//
// # Paragraph Reconstruction
//
// The [Reconstructor] merges raw per-page lines into page-tagged paragraphs,
// joining hyphen-wrapped line breaks and treating blank or short lines as
// paragraph terminators:
//
//	rec := text.NewReconstructor()
//	paragraphs := rec.Reconstruct(pages)
//
// Use [ReconstructorConfig] to set the minimum effective line length or to
// restrict processing to an allowlist of pages.
//
// # Sentence Segmentation
//
// The [Segmenter] splits paragraphs into sentences using rules selected by
// language detection:
//
//	seg := text.NewSegmenter()
//	sentences := seg.SegmentAll(paragraphs)
//
// CJK text is cut after each terminal punctuation mark; Latin text is cut at
// terminal punctuation followed by whitespace and a sentence-start character,
// with a looser fallback when the strict rule under-splits long paragraphs.
//
// # Language Detection
//
// The [LanguageDetector] interface decouples segmentation from any concrete
// detector. The default [ScriptDetector] infers the language from Unicode
// script membership and needs no external data. Detection failure is never
// fatal: the segmenter falls back to the Latin rules.
package text
