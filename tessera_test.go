package tessera

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/tessera/extract"
	"github.com/tsawler/tessera/model"
	"github.com/tsawler/tessera/rag"
)

// quietLogger keeps expected warnings out of test output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenDefaults(t *testing.T) {
	p := Open("document.pdf")

	if p.filename != "document.pdf" {
		t.Errorf("filename = %q, want %q", p.filename, "document.pdf")
	}
	if p.err != nil {
		t.Errorf("unexpected error: %v", p.err)
	}
	if p.options.chunkSize != rag.DefaultChunkSize {
		t.Errorf("chunkSize = %d, want %d", p.options.chunkSize, rag.DefaultChunkSize)
	}
	if p.options.overlapSize != rag.DefaultOverlapSize {
		t.Errorf("overlapSize = %d, want %d", p.options.overlapSize, rag.DefaultOverlapSize)
	}
	if p.options.pages != nil {
		t.Errorf("pages = %v, want nil", p.options.pages)
	}
}

func TestChainReturnsNewInstance(t *testing.T) {
	base := FromPages([]model.PageText{model.NewPageText(0, "Some text here.")}, "base")
	derived := base.ChunkSize(100)

	if base == derived {
		t.Error("chain method returned the same instance")
	}
	if base.options.chunkSize != rag.DefaultChunkSize {
		t.Errorf("base chunkSize changed to %d", base.options.chunkSize)
	}
	if derived.options.chunkSize != 100 {
		t.Errorf("derived chunkSize = %d, want 100", derived.options.chunkSize)
	}
}

func TestChainPagesDeepCopy(t *testing.T) {
	base := Open("doc.pdf").Pages(0, 1)
	derived := base.Pages(2)

	if got := base.options.pages; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("base pages = %v, want [0 1]", got)
	}
	if got := derived.options.pages; !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("derived pages = %v, want [0 1 2]", got)
	}
}

func TestPageRange(t *testing.T) {
	p := Open("doc.pdf").PageRange(1, 3)
	if got := p.options.pages; !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("pages = %v, want [1 2 3]", got)
	}
}

func TestChainValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Pipeline
		wantErr string
	}{
		{
			name:    "zero chunk size",
			build:   func() *Pipeline { return Open("doc.pdf").ChunkSize(0) },
			wantErr: "chunk size",
		},
		{
			name:    "negative overlap",
			build:   func() *Pipeline { return Open("doc.pdf").OverlapSize(-1) },
			wantErr: "overlap size",
		},
		{
			name:    "zero min line length",
			build:   func() *Pipeline { return Open("doc.pdf").MinLineLength(0) },
			wantErr: "min line length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.build()
			if p.err == nil {
				t.Fatal("expected accumulated error, got nil")
			}
			if !strings.Contains(p.err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", p.err, tt.wantErr)
			}

			_, _, err := p.Chunks()
			if err == nil {
				t.Error("terminal operation should surface the accumulated error")
			}
		})
	}
}

func TestChainErrorSurvivesLaterCalls(t *testing.T) {
	p := Open("doc.pdf").ChunkSize(-5).OverlapSize(50).Source("label")
	if p.err == nil {
		t.Fatal("expected accumulated error to survive later chain calls")
	}
	_, _, err := p.Sentences()
	if err == nil {
		t.Error("Sentences should return the accumulated error")
	}
}

func TestParagraphsHyphenationAndBlankLine(t *testing.T) {
	pages := []model.PageText{
		model.NewPageText(0, "Hello wor-", "ld today.", "", "Next para."),
	}

	paragraphs, warnings, err := FromPages(pages, "inline").Paragraphs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	want := []model.Paragraph{
		{Page: 0, Text: "Hello world today."},
		{Page: 0, Text: "Next para."},
	}
	if !reflect.DeepEqual(paragraphs, want) {
		t.Errorf("paragraphs = %v, want %v", paragraphs, want)
	}
}

func TestChunksSlidingWindow(t *testing.T) {
	pages := []model.PageText{
		model.NewPageText(0, "AAAAA. BBBBB. CCCCC. DDDDD."),
	}

	chunks, _, err := FromPages(pages, "inline").
		ChunkSize(14).
		OverlapSize(7).
		Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"AAAAA. BBBBB.", "BBBBB. CCCCC.", "CCCCC. DDDDD."}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d: %v", len(chunks), len(want), chunks)
	}
	for i, w := range want {
		if chunks[i].Content != w {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i].Content, w)
		}
	}
}

func TestChunksSourceLabel(t *testing.T) {
	pages := []model.PageText{model.NewPageText(0, "One sentence here.")}

	chunks, _, err := FromPages(pages, "report.pdf").Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Source != "report.pdf" {
		t.Errorf("Source = %q, want %q", chunks[0].Source, "report.pdf")
	}

	chunks, _, err = FromPages(pages, "report.pdf").Source("override").Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks[0].Source != "override" {
		t.Errorf("Source = %q, want %q", chunks[0].Source, "override")
	}
}

func TestEmptyDocumentWarning(t *testing.T) {
	pages := []model.PageText{model.NewPageText(0)}

	paragraphs, warnings, err := FromPages(pages, "scan.pdf").
		WithLogger(quietLogger()).
		Paragraphs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paragraphs) != 0 {
		t.Errorf("got %d paragraphs, want 0", len(paragraphs))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0].Code != WarnEmptyDocument {
		t.Errorf("warning code = %q, want %q", warnings[0].Code, WarnEmptyDocument)
	}
	if warnings[0].Page != -1 {
		t.Errorf("warning page = %d, want -1", warnings[0].Page)
	}
}

func TestEmptyPageWarning(t *testing.T) {
	pages := []model.PageText{
		model.NewPageText(0, "Text on the first page."),
		model.NewPageText(1),
	}

	chunks, warnings, err := FromPages(pages, "doc.pdf").
		Pages(0, 1).
		WithLogger(quietLogger()).
		Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Error("expected chunks from the first page")
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0].Code != WarnEmptyPage {
		t.Errorf("warning code = %q, want %q", warnings[0].Code, WarnEmptyPage)
	}
	if warnings[0].Page != 1 {
		t.Errorf("warning page = %d, want 1", warnings[0].Page)
	}
}

func TestPageFilter(t *testing.T) {
	pages := []model.PageText{
		model.NewPageText(0, "First page text."),
		model.NewPageText(1, "Second page text."),
		model.NewPageText(2, "Third page text."),
	}

	paragraphs, _, err := FromPages(pages, "doc.pdf").Pages(1).Paragraphs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
	}
	if paragraphs[0].Page != 1 {
		t.Errorf("Page = %d, want 1", paragraphs[0].Page)
	}
	if paragraphs[0].Text != "Second page text." {
		t.Errorf("Text = %q", paragraphs[0].Text)
	}
}

func TestNoInput(t *testing.T) {
	_, _, err := Open("").Chunks()
	if err == nil {
		t.Fatal("expected error for empty filename")
	}
	if !strings.Contains(err.Error(), "no input") {
		t.Errorf("error = %q, want it to mention missing input", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.txt")).Chunks()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist in chain", err)
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	_, _, err := Open("archive.zip").Chunks()
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "First sentence here. Second sentence follows.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	chunks, warnings, err := Open(path).Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "First sentence here. Second sentence follows." {
		t.Errorf("Content = %q", chunks[0].Content)
	}
	if chunks[0].Source != path {
		t.Errorf("Source = %q, want %q", chunks[0].Source, path)
	}
}

func TestFromReader(t *testing.T) {
	r := strings.NewReader("Reader sentence one. Reader sentence two.")

	chunks, _, err := FromReader(r, extract.NewTextExtractor(), "stream").Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Source != "stream" {
		t.Errorf("Source = %q, want %q", chunks[0].Source, "stream")
	}
}

func TestFromReaderRequiresExtractor(t *testing.T) {
	_, _, err := FromReader(strings.NewReader("text"), nil, "stream").Chunks()
	if err == nil {
		t.Fatal("expected error when no extractor is given")
	}
	if !strings.Contains(err.Error(), "extractor") {
		t.Errorf("error = %q, want it to mention the extractor", err)
	}
}

func TestWithExtractorOverridesDetection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(path, []byte("Plain text in disguise."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	chunks, _, err := Open(path).WithExtractor(extract.NewTextExtractor()).Chunks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "Plain text in disguise." {
		t.Errorf("Content = %q", chunks[0].Content)
	}
}

func TestWithChunkerConfig(t *testing.T) {
	p := Open("doc.pdf").WithChunkerConfig(rag.SmallChunkerConfig())
	if p.options.chunkSize != 400 {
		t.Errorf("chunkSize = %d, want 400", p.options.chunkSize)
	}
	if p.options.overlapSize != 100 {
		t.Errorf("overlapSize = %d, want 100", p.options.overlapSize)
	}
}

func TestDocuments(t *testing.T) {
	pages := []model.PageText{model.NewPageText(2, "A sentence for the store.")}

	docs, _, err := FromPages(pages, "kb.pdf").Documents()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].PageContent != "A sentence for the store." {
		t.Errorf("PageContent = %q", docs[0].PageContent)
	}
	if got := docs[0].Metadata["page"]; got != 2 {
		t.Errorf("Metadata[page] = %v, want 2", got)
	}
	if got := docs[0].Metadata["source"]; got != "kb.pdf" {
		t.Errorf("Metadata[source] = %v, want %q", got, "kb.pdf")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestMustChunks(t *testing.T) {
	pages := []model.PageText{model.NewPageText(0, "A short sentence.")}
	chunks := MustChunks(FromPages(pages, "inline").Chunks())
	if len(chunks) != 1 {
		t.Errorf("got %d chunks, want 1", len(chunks))
	}

	defer func() {
		if recover() == nil {
			t.Error("MustChunks should panic on error")
		}
	}()
	MustChunks(Open("").Chunks())
}

func TestFormatWarnings(t *testing.T) {
	tests := []struct {
		name     string
		warnings []Warning
		want     string
	}{
		{
			name:     "none",
			warnings: nil,
			want:     "",
		},
		{
			name: "document level",
			warnings: []Warning{
				{Code: WarnEmptyDocument, Message: "no text", Page: -1},
			},
			want: "empty-document: no text",
		},
		{
			name: "page level",
			warnings: []Warning{
				{Code: WarnEmptyPage, Message: "nothing there", Page: 3},
			},
			want: "empty-page: nothing there (page 3)",
		},
		{
			name: "multiple",
			warnings: []Warning{
				{Code: WarnEmptyPage, Message: "nothing there", Page: 1},
				{Code: WarnEmptyPage, Message: "nothing there", Page: 2},
			},
			want: "empty-page: nothing there (page 1); empty-page: nothing there (page 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWarnings(tt.warnings); got != tt.want {
				t.Errorf("FormatWarnings = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	missing := filepath.Join(dir, "missing.txt")

	if err := os.WriteFile(first, []byte("Text in the first file."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(second, []byte("Text in the second file."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	results := ProcessFiles(context.Background(), []string{first, missing, second})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Source != first || results[1].Source != missing || results[2].Source != second {
		t.Errorf("results out of input order: %v", results)
	}
	if results[0].Err != nil {
		t.Errorf("first file failed: %v", results[0].Err)
	}
	if len(results[0].Chunks) == 0 {
		t.Error("first file produced no chunks")
	}
	if results[1].Err == nil {
		t.Error("missing file should report an error")
	}
	if results[1].Chunks != nil {
		t.Errorf("missing file should have nil chunks, got %v", results[1].Chunks)
	}
	if results[2].Err != nil {
		t.Errorf("second file failed: %v", results[2].Err)
	}
}

func TestProcessFilesWithConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("Alpha beta gamma. Delta epsilon zeta. Eta theta iota."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	config := BatchConfig{
		Workers: 2,
		Configure: func(p *Pipeline) *Pipeline {
			return p.ChunkSize(20).OverlapSize(0)
		},
	}

	results := ProcessFilesWithConfig(context.Background(), []string{path}, config)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if len(results[0].Chunks) < 2 {
		t.Errorf("small budget should split into multiple chunks, got %d", len(results[0].Chunks))
	}
}

func TestProcessFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ProcessFiles(ctx, []string{"a.txt", "b.txt"})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, res.Err)
		}
	}
}

func TestDefaultBatchConfig(t *testing.T) {
	config := DefaultBatchConfig()
	if config.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", config.Workers)
	}
	if config.Configure != nil {
		t.Error("Configure should default to nil")
	}
}
