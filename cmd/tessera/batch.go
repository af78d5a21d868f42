package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/tessera"
	"github.com/tsawler/tessera/model"
	"github.com/tsawler/tessera/rag"
)

var (
	batchWorkers   int
	batchOutDir    string
	batchChunkSize int
	batchOverlap   int
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Chunk many documents concurrently",
	Long: `Chunk many documents concurrently and write one JSONL file per
document into the output directory. Each document is processed by one
worker; a document that fails is reported and skipped without aborting
the rest.

Interrupting the run stops scheduling new documents; documents already
being processed run to completion.

Examples:
  tessera batch docs/a.pdf docs/b.docx
  tessera batch docs/*.pdf --out-dir chunks --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", envInt("TESSERA_WORKERS", 0), "Concurrent workers (default: CPU count)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", ".", "Directory for per-document JSONL output")
	batchCmd.Flags().IntVar(&batchChunkSize, "chunk-size", envInt("TESSERA_CHUNK_SIZE", rag.DefaultChunkSize), "Chunk budget in runes")
	batchCmd.Flags().IntVar(&batchOverlap, "overlap", envInt("TESSERA_OVERLAP_SIZE", rag.DefaultOverlapSize), "Overlap budget in runes")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	start := time.Now()

	results := tessera.ProcessFilesWithConfig(ctx, args, tessera.BatchConfig{
		Workers: batchWorkers,
		Configure: func(p *tessera.Pipeline) *tessera.Pipeline {
			return p.ChunkSize(batchChunkSize).OverlapSize(batchOverlap)
		},
	})

	exporter := rag.NewExporterWithConfig(rag.EmbeddingExportConfig())

	failed := 0
	total := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Source, res.Err)
			continue
		}
		if len(res.Warnings) > 0 {
			fmt.Fprintf(os.Stderr, "%s: %s\n", res.Source, tessera.FormatWarnings(res.Warnings))
		}

		outPath := filepath.Join(batchOutDir, outputName(res.Source))
		if err := writeChunks(exporter, outPath, res.Chunks); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Source, err)
			continue
		}

		total += len(res.Chunks)
		fmt.Printf("%s: %d chunks -> %s\n", res.Source, len(res.Chunks), outPath)
	}

	fmt.Printf("Processed %d documents (%d failed), %d chunks in %s\n",
		len(results), failed, total, time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// outputName maps a source path to its JSONL output filename.
func outputName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".jsonl"
}

func writeChunks(exporter *rag.Exporter, path string, chunks []model.Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := exporter.Export(f, chunks); err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	return nil
}
