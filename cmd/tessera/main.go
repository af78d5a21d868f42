// Tessera - turn documents into retrieval-ready text chunks
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	verbose bool
)

func main() {
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Chunk documents for retrieval pipelines",
	Long: `Tessera turns PDF, DOCX, Markdown, HTML, and plain text documents into
size-bounded, overlapping text chunks with page provenance, ready for
embedding and vector-store ingestion.

Text flows through three stages: raw page lines are folded into
paragraphs, paragraphs are split into sentences with language-sensitive
rules, and sentences are packed into overlapping chunks.

Examples:
  # Chunk a document to JSONL on stdout
  tessera chunk document.pdf

  # Smaller chunks from the first three pages, written to a file
  tessera chunk document.pdf --chunk-size 400 --overlap 100 --pages 0,1,2 -o chunks.jsonl

  # Inspect how a document flows through the pipeline
  tessera inspect document.pdf

  # Chunk many documents concurrently
  tessera batch docs/a.pdf docs/b.docx --out-dir chunks`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(chunkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(batchCmd)
}
