package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/tessera/model"
)

// CSVExtractor renders tabular data as labelled text. The header row
// names each field, and every data row becomes one "name: value, name:
// value" paragraph, so later stages treat rows as independent units
// instead of merging a whole table into one blob.
type CSVExtractor struct{}

// NewCSVExtractor creates a CSV extractor.
func NewCSVExtractor() *CSVExtractor {
	return &CSVExtractor{}
}

// Extract reads all records and renders them on a single page.
func (e *CSVExtractor) Extract(r io.Reader) ([]model.PageText, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	// Ragged rows are rendered positionally, not rejected.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return []model.PageText{model.NewPageText(0)}, nil
	}

	headers := records[0]
	lines := make([]string, 0, len(records)*2)
	lines = append(lines, "Headers: "+strings.Join(headers, ", "), "")

	for _, row := range records[1:] {
		var b strings.Builder
		for j, cell := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			if j < len(headers) {
				b.WriteString(headers[j] + ": " + cell)
			} else {
				b.WriteString(cell)
			}
		}
		lines = append(lines, b.String(), "")
	}

	return []model.PageText{{Page: 0, Lines: lines}}, nil
}
