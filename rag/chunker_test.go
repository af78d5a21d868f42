package rag

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tsawler/tessera/model"
)

func TestNewChunker(t *testing.T) {
	c := NewChunker()
	if c == nil {
		t.Fatal("NewChunker returned nil")
	}
	if c.config.ChunkSize != DefaultChunkSize {
		t.Errorf("expected ChunkSize %d, got %d", DefaultChunkSize, c.config.ChunkSize)
	}
	if c.config.OverlapSize != DefaultOverlapSize {
		t.Errorf("expected OverlapSize %d, got %d", DefaultOverlapSize, c.config.OverlapSize)
	}
}

func TestNewChunkerWithConfigNormalizes(t *testing.T) {
	c := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 0, OverlapSize: -5})
	if c.config.ChunkSize != DefaultChunkSize {
		t.Errorf("expected ChunkSize to fall back to %d, got %d", DefaultChunkSize, c.config.ChunkSize)
	}
	if c.config.OverlapSize != 0 {
		t.Errorf("expected negative OverlapSize to become 0, got %d", c.config.OverlapSize)
	}
}

func TestChunkSlidingWindow(t *testing.T) {
	// Four six-rune sentences with a 14-rune budget pack two sentences per
	// chunk; a seven-rune overlap pulls one sentence back each time.
	sentences := []model.Sentence{
		{Page: 0, Text: "AAAAA."},
		{Page: 0, Text: "BBBBB."},
		{Page: 0, Text: "CCCCC."},
		{Page: 0, Text: "DDDDD."},
	}

	chunker := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 14, OverlapSize: 7})
	chunks := chunker.Chunk(sentences)

	want := []string{
		"AAAAA. BBBBB.",
		"BBBBB. CCCCC.",
		"CCCCC. DDDDD.",
	}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, ch := range chunks {
		if ch.Content != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], ch.Content)
		}
		if ch.Page != 0 {
			t.Errorf("chunk %d: expected page 0, got %d", i, ch.Page)
		}
	}
}

func TestChunkOversizedSentence(t *testing.T) {
	long := strings.Repeat("x", 1000)

	chunker := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 800, OverlapSize: 200})
	chunks := chunker.Chunk([]model.Sentence{{Page: 0, Text: long}})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != long {
		t.Error("oversized sentence was not kept whole")
	}
	if chunks[0].Len() != 1000 {
		t.Errorf("expected length 1000, got %d", chunks[0].Len())
	}
}

func TestChunkEmptyInput(t *testing.T) {
	chunker := NewChunker()

	if got := chunker.Chunk(nil); len(got) != 0 {
		t.Errorf("expected no chunks for nil input, got %d", len(got))
	}
	if got := chunker.Chunk([]model.Sentence{}); len(got) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(got))
	}
}

func TestChunkTerminatesWhenOverlapExceedsChunkSize(t *testing.T) {
	sentences := []model.Sentence{
		{Page: 0, Text: "AAa."},
		{Page: 0, Text: "BBb."},
		{Page: 0, Text: "CCc."},
	}

	chunker := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 10, OverlapSize: 10})
	chunks := chunker.Chunk(sentences)

	want := []string{"AAa. BBb.", "BBb. CCc."}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, ch := range chunks {
		if ch.Content != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], ch.Content)
		}
	}
}

func TestChunkCoverageAndBounds(t *testing.T) {
	// Thirty distinct four-rune sentences across three pages. Every chunk
	// must be a contiguous sentence window, starts must strictly advance,
	// and the windows together must cover the whole sequence.
	const n = 30
	sentences := make([]model.Sentence, n)
	index := make(map[string]int, n)
	for i := range sentences {
		text := fmt.Sprintf("w%02d.", i)
		sentences[i] = model.Sentence{Page: i / 10, Text: text}
		index[text] = i
	}

	chunker := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 18, OverlapSize: 6})
	chunks := chunker.Chunk(sentences)

	if len(chunks) == 0 {
		t.Fatal("expected chunks, got none")
	}
	if len(chunks) > n {
		t.Fatalf("emitted %d chunks for %d sentences", len(chunks), n)
	}

	prevStart := -1
	covered := 0
	for ci, ch := range chunks {
		tokens := strings.Fields(ch.Content)

		first, ok := index[tokens[0]]
		if !ok {
			t.Fatalf("chunk %d starts mid-sentence: %q", ci, tokens[0])
		}
		for j, tok := range tokens {
			idx, ok := index[tok]
			if !ok {
				t.Fatalf("chunk %d contains a cut sentence: %q", ci, tok)
			}
			if idx != first+j {
				t.Fatalf("chunk %d is not a contiguous window: %q", ci, ch.Content)
			}
		}

		if len(tokens) > 1 && utf8.RuneCountInString(ch.Content) > 18 {
			t.Errorf("chunk %d exceeds the budget: %d runes", ci, utf8.RuneCountInString(ch.Content))
		}
		if ch.Page != sentences[first].Page {
			t.Errorf("chunk %d: expected page %d, got %d", ci, sentences[first].Page, ch.Page)
		}

		if first <= prevStart {
			t.Fatalf("chunk %d start %d did not advance past %d", ci, first, prevStart)
		}
		if first > covered {
			t.Fatalf("chunk %d leaves sentences %d..%d uncovered", ci, covered, first-1)
		}
		prevStart = first
		if end := first + len(tokens); end > covered {
			covered = end
		}
	}

	if covered != n {
		t.Errorf("expected all %d sentences covered, got %d", n, covered)
	}
}

func TestChunkDeterminism(t *testing.T) {
	sentences := make([]model.Sentence, 0, 12)
	for i := 0; i < 12; i++ {
		sentences = append(sentences, model.Sentence{
			Page: i / 4,
			Text: fmt.Sprintf("Sentence number %d ends here.", i),
		})
	}

	chunker := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 80, OverlapSize: 30})

	first := chunker.Chunk(sentences)
	second := chunker.Chunk(sentences)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different chunk sequences")
	}
}

func TestChunkStampsSource(t *testing.T) {
	chunker := NewChunkerWithConfig(ChunkerConfig{
		ChunkSize:   20,
		OverlapSize: 5,
		Source:      "report.pdf",
	})

	chunks := chunker.Chunk([]model.Sentence{
		{Page: 0, Text: "First sentence here."},
		{Page: 1, Text: "Second sentence here."},
	})

	if len(chunks) == 0 {
		t.Fatal("expected chunks, got none")
	}
	for i, ch := range chunks {
		if ch.Source != "report.pdf" {
			t.Errorf("chunk %d: expected source %q, got %q", i, "report.pdf", ch.Source)
		}
	}
}

func TestChunkCJKBudgetInRunes(t *testing.T) {
	// Each sentence is six runes but eighteen bytes; both fit a
	// thirteen-rune budget only if sizes are counted in runes.
	sentences := []model.Sentence{
		{Page: 0, Text: "这是第一句。"},
		{Page: 0, Text: "这是第二句。"},
	}
	for i, s := range sentences {
		if got := utf8.RuneCountInString(s.Text); got != 6 {
			t.Fatalf("fixture sentence %d has %d runes", i, got)
		}
	}

	chunker := NewChunkerWithConfig(ChunkerConfig{ChunkSize: 13, OverlapSize: 0})
	chunks := chunker.Chunk(sentences)

	if len(chunks) != 1 {
		t.Fatalf("expected both sentences in one chunk, got %d chunks", len(chunks))
	}
}

func TestStats(t *testing.T) {
	chunks := []model.Chunk{
		{Content: "abcd", Page: 0},
		{Content: "abcdefgh", Page: 1},
	}

	stats := Stats(chunks)
	if stats.Count != 2 {
		t.Errorf("expected Count 2, got %d", stats.Count)
	}
	if stats.TotalRunes != 12 {
		t.Errorf("expected TotalRunes 12, got %d", stats.TotalRunes)
	}
	if stats.MinRunes != 4 || stats.MaxRunes != 8 {
		t.Errorf("expected Min/Max 4/8, got %d/%d", stats.MinRunes, stats.MaxRunes)
	}
	if stats.AvgRunes != 6 {
		t.Errorf("expected AvgRunes 6, got %d", stats.AvgRunes)
	}
	if stats.Pages != 2 {
		t.Errorf("expected Pages 2, got %d", stats.Pages)
	}
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats(nil)
	if stats.Count != 0 || stats.TotalRunes != 0 || stats.Pages != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}
