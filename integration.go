// integration.go provides batch processing of many documents into chunks
// with bounded concurrency.
package tessera

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/tessera/model"
)

// DocumentResult holds the outcome of processing one document. A failed
// document reports its error here; it never aborts the rest of the batch.
type DocumentResult struct {
	// Source is the filename the document was opened from.
	Source string

	// Chunks is the chunk sequence, nil when Err is set.
	Chunks []model.Chunk

	// Warnings are the non-fatal conditions reported by the pipeline.
	Warnings []Warning

	// Err is the processing error, nil on success.
	Err error
}

// BatchConfig holds configuration options for batch processing.
type BatchConfig struct {
	// Workers caps how many documents are processed concurrently.
	// Default: runtime.NumCPU()
	Workers int

	// Configure customizes the pipeline for each file, e.g. setting chunk
	// budgets. nil means defaults.
	Configure func(p *Pipeline) *Pipeline
}

// DefaultBatchConfig returns sensible default configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Workers: runtime.NumCPU(),
	}
}

// ProcessFiles chunks many documents concurrently with default
// configuration. Results are returned in input order.
//
// Example:
//
//	results := tessera.ProcessFiles(ctx, []string{"a.pdf", "b.docx"})
//	for _, res := range results {
//	    if res.Err != nil {
//	        log.Printf("%s: %v", res.Source, res.Err)
//	        continue
//	    }
//	    index(res.Chunks)
//	}
func ProcessFiles(ctx context.Context, filenames []string) []DocumentResult {
	return ProcessFilesWithConfig(ctx, filenames, DefaultBatchConfig())
}

// ProcessFilesWithConfig chunks many documents concurrently with custom
// configuration. Each document is processed by one worker from start to
// finish. Cancellation is observed between documents: files not yet
// started report the context error, files in flight run to completion.
func ProcessFilesWithConfig(ctx context.Context, filenames []string, config BatchConfig) []DocumentResult {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]DocumentResult, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = DocumentResult{Source: filename, Err: err}
				return nil
			}

			p := Open(filename)
			if config.Configure != nil {
				p = config.Configure(p)
			}

			chunks, warnings, err := p.Chunks()
			results[i] = DocumentResult{
				Source:   filename,
				Chunks:   chunks,
				Warnings: warnings,
				Err:      err,
			}
			return nil
		})
	}

	// Goroutines record their outcomes in results and never return an
	// error, so Wait only synchronizes.
	_ = g.Wait()

	return results
}
