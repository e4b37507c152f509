package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/doctriage/internal/section"
)

// CSVParser handles CSV files. Rows are grouped into batches of 20, each
// batch rendered as one page so large files don't collapse into a single
// oversized section.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]section.Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	const batchSize = 20
	var pages []section.Page
	for i := 0; i < len(dataRows); i += batchSize {
		end := i + batchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}

		pages = append(pages, section.Page{
			Number: len(pages) + 1,
			Text:   text.String(),
		})
	}
	return pages, nil
}
