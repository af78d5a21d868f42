package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/tessera"
	"github.com/tsawler/tessera/extract"
	"github.com/tsawler/tessera/rag"
)

var (
	inspectShow      int
	inspectChunkSize int
	inspectOverlap   int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show how a document flows through the pipeline",
	Long: `Show how a document flows through the pipeline: page, line,
paragraph, sentence, and chunk counts, chunk size statistics, and a
preview of the first chunks. Useful for tuning budgets before indexing
a corpus.

Examples:
  tessera inspect document.pdf
  tessera inspect document.pdf --chunk-size 400 --show 5`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectShow, "show", "n", 3, "Number of chunks to preview")
	inspectCmd.Flags().IntVar(&inspectChunkSize, "chunk-size", envInt("TESSERA_CHUNK_SIZE", rag.DefaultChunkSize), "Chunk budget in runes")
	inspectCmd.Flags().IntVar(&inspectOverlap, "overlap", envInt("TESSERA_OVERLAP_SIZE", rag.DefaultOverlapSize), "Overlap budget in runes")
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]
	start := time.Now()

	ex, err := extract.ForFile(filename)
	if err != nil {
		return err
	}
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	pages, err := ex.Extract(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("extract %s: %w", filename, err)
	}

	lines := 0
	for _, pg := range pages {
		lines += pg.LineCount()
	}

	// Extraction happened once above; the stage calls below reuse the
	// pages in memory.
	p := tessera.FromPages(pages, filename)

	paragraphs, _, err := p.Paragraphs()
	if err != nil {
		return err
	}
	sentences, _, err := p.Sentences()
	if err != nil {
		return err
	}
	chunks, warnings, err := p.ChunkSize(inspectChunkSize).OverlapSize(inspectOverlap).Chunks()
	if err != nil {
		return err
	}

	stats := rag.Stats(chunks)

	fmt.Printf("Document:   %s\n", filename)
	fmt.Printf("Pages:      %d\n", len(pages))
	fmt.Printf("Lines:      %d\n", lines)
	fmt.Printf("Paragraphs: %d\n", len(paragraphs))
	fmt.Printf("Sentences:  %d\n", len(sentences))
	fmt.Printf("Chunks:     %d\n", stats.Count)
	if stats.Count > 0 {
		fmt.Printf("Sizes:      %d-%d runes (avg %d), starting on %d pages\n",
			stats.MinRunes, stats.MaxRunes, stats.AvgRunes, stats.Pages)
	}
	fmt.Printf("Elapsed:    %s\n", time.Since(start).Round(time.Millisecond))

	if len(warnings) > 0 {
		fmt.Println("Warnings:  ", tessera.FormatWarnings(warnings))
	}

	for i, chunk := range chunks {
		if i >= inspectShow {
			break
		}
		fmt.Printf("\nChunk %d (page %d, %d runes):\n  %s\n",
			i+1, chunk.Page, chunk.Len(), truncate(chunk.Content, 200))
	}

	return nil
}

// truncate shortens s to at most n runes for preview output.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
