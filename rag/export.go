package rag

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/tsawler/tessera/model"
)

// ExportFormat identifies the output encoding for chunk export.
type ExportFormat int

const (
	// FormatJSONL writes one JSON object per line. The default; most
	// embedding and ingestion pipelines stream this format.
	FormatJSONL ExportFormat = iota
	// FormatJSON writes a single JSON array.
	FormatJSON
	// FormatCSV writes comma-separated rows with a header.
	FormatCSV
)

// String returns a human-readable representation of the export format.
func (f ExportFormat) String() string {
	switch f {
	case FormatJSONL:
		return "jsonl"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ParseExportFormat maps a format name to an ExportFormat. Recognized
// names are "jsonl", "json", and "csv".
func ParseExportFormat(name string) (ExportFormat, error) {
	switch name {
	case "jsonl":
		return FormatJSONL, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatJSONL, fmt.Errorf("unknown export format %q", name)
	}
}

// ExportConfig holds configuration options for chunk export.
type ExportConfig struct {
	// Format selects the output encoding.
	// Default: FormatJSONL
	Format ExportFormat

	// IncludeIDs assigns a random UUID to each exported chunk, giving
	// ingestion pipelines a record key.
	// Default: false
	IncludeIDs bool

	// Pretty indents JSON output. Only meaningful for FormatJSON.
	// Default: false
	Pretty bool
}

// DefaultExportConfig returns sensible default configuration.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format: FormatJSONL,
	}
}

// EmbeddingExportConfig returns a configuration for embedding pipelines:
// JSON Lines with per-chunk IDs for upserting into vector stores.
func EmbeddingExportConfig() ExportConfig {
	return ExportConfig{
		Format:     FormatJSONL,
		IncludeIDs: true,
	}
}

// SpreadsheetExportConfig returns a configuration for manual review: CSV
// rows that open directly in spreadsheet tools.
func SpreadsheetExportConfig() ExportConfig {
	return ExportConfig{
		Format: FormatCSV,
	}
}

// ExportedChunk is the serialized form of a chunk.
type ExportedChunk struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Page    int    `json:"page"`
	Source  string `json:"source,omitempty"`
}

// Exporter writes chunk sequences to an io.Writer in a configured format.
type Exporter struct {
	config ExportConfig
}

// NewExporter creates an exporter with default configuration.
func NewExporter() *Exporter {
	return &Exporter{
		config: DefaultExportConfig(),
	}
}

// NewExporterWithConfig creates an exporter with custom configuration.
func NewExporterWithConfig(config ExportConfig) *Exporter {
	return &Exporter{
		config: config,
	}
}

// Export writes the chunks to w in the configured format.
func (e *Exporter) Export(w io.Writer, chunks []model.Chunk) error {
	records := e.records(chunks)

	switch e.config.Format {
	case FormatJSONL:
		return exportJSONL(w, records)
	case FormatJSON:
		return exportJSON(w, records, e.config.Pretty)
	case FormatCSV:
		return exportCSV(w, records, e.config.IncludeIDs)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// records converts chunks to their serialized form, assigning IDs when
// configured.
func (e *Exporter) records(chunks []model.Chunk) []ExportedChunk {
	records := make([]ExportedChunk, 0, len(chunks))
	for _, ch := range chunks {
		record := ExportedChunk{
			Content: ch.Content,
			Page:    ch.Page,
			Source:  ch.Source,
		}
		if e.config.IncludeIDs {
			record.ID = uuid.NewString()
		}
		records = append(records, record)
	}
	return records
}

func exportJSONL(w io.Writer, records []ExportedChunk) error {
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("encoding chunk: %w", err)
		}
	}
	return nil
}

func exportJSON(w io.Writer, records []ExportedChunk, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding chunks: %w", err)
	}
	return nil
}

func exportCSV(w io.Writer, records []ExportedChunk, includeIDs bool) error {
	cw := csv.NewWriter(w)

	header := []string{"content", "page", "source"}
	if includeIDs {
		header = append([]string{"id"}, header...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, record := range records {
		row := []string{record.Content, strconv.Itoa(record.Page), record.Source}
		if includeIDs {
			row = append([]string{record.ID}, row...)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DefaultBatchSize is the default number of chunks per export batch,
// matching the request limits of common embedding services.
const DefaultBatchSize = 10

// BatchExporter splits chunk sequences into bounded batches before export,
// for collaborators that cap how many documents one request may carry.
type BatchExporter struct {
	exporter  *Exporter
	batchSize int
}

// NewBatchExporter creates a batch exporter wrapping the given exporter.
// A non-positive batchSize falls back to DefaultBatchSize.
func NewBatchExporter(exporter *Exporter, batchSize int) *BatchExporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchExporter{
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// Batches splits chunks into consecutive slices of at most the configured
// batch size. The final batch may be shorter. Returned slices share the
// input's backing array.
func (b *BatchExporter) Batches(chunks []model.Chunk) [][]model.Chunk {
	batches := make([][]model.Chunk, 0, (len(chunks)+b.batchSize-1)/b.batchSize)
	for i := 0; i < len(chunks); i += b.batchSize {
		end := i + b.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[i:end])
	}
	return batches
}

// ExportBatch invokes fn once per batch, in order, stopping at the first
// error. The callback owns delivery: writing files, posting to an
// ingestion endpoint, or feeding an embedding client.
func (b *BatchExporter) ExportBatch(chunks []model.Chunk, fn func(index int, batch []model.Chunk) error) error {
	for i, batch := range b.Batches(chunks) {
		if err := fn(i, batch); err != nil {
			return fmt.Errorf("exporting batch %d: %w", i, err)
		}
	}
	return nil
}

// ExportTo writes each batch to the writer returned by open, closing it
// after the batch is written. open receives the zero-based batch index.
func (b *BatchExporter) ExportTo(chunks []model.Chunk, open func(index int) (io.WriteCloser, error)) error {
	return b.ExportBatch(chunks, func(i int, batch []model.Chunk) error {
		w, err := open(i)
		if err != nil {
			return err
		}
		if err := b.exporter.Export(w, batch); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
}
